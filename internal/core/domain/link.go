package domain

// Link is a directed weighted edge of the lore graph. Weight is an
// occurrence count and must never be negative; the outgoing links of a
// source node form a discrete distribution in list order.
type Link struct {
	To     Node
	Weight int
}
