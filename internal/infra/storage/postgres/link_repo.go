package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// LinkRepo reads the lore graph adjacency from PostgreSQL.
type LinkRepo struct {
	db *sqlx.DB
}

// NewLinkRepo creates a link repository over db.
func NewLinkRepo(db *DB) *LinkRepo {
	return &LinkRepo{db: db.DB}
}

type linkRow struct {
	DstKind         string         `db:"dst_kind"`
	DstTokenKind    string         `db:"dst_token_kind"`
	DstContent      string         `db:"dst_content"`
	DstPartOfSpeech sql.NullString `db:"dst_part_of_speech"`
	DstCategory     sql.NullString `db:"dst_category"`
	Weight          int            `db:"weight"`
}

// LinksFrom returns the outgoing links of source in insertion order.
// Order matters: the composer folds the drawn weight over the list.
// Query failures are retryable; malformed rows are not.
func (r *LinkRepo) LinksFrom(ctx context.Context, source domain.Node) ([]domain.Link, error) {
	const query = `
		SELECT dst_kind, dst_token_kind, dst_content, dst_part_of_speech, dst_category, weight
		FROM lore_links
		WHERE src_kind = $1 AND src_content = $2
		ORDER BY id ASC
	`
	var rows []linkRow
	if err := r.db.SelectContext(ctx, &rows, query, kindColumn(source.Kind), source.Token.Content); err != nil {
		return nil, domain.Retryable(fmt.Errorf("select links: %w", err))
	}

	links := make([]domain.Link, 0, len(rows))
	for _, row := range rows {
		node, err := row.node()
		if err != nil {
			return nil, err
		}
		links = append(links, domain.Link{To: node, Weight: row.Weight})
	}
	return links, nil
}

func (row linkRow) node() (domain.Node, error) {
	var token domain.Token
	switch row.DstTokenKind {
	case "text":
		token = domain.TextToken(row.DstContent, row.DstPartOfSpeech.String)
	case "name":
		token = domain.NameToken(row.DstContent, domain.NameCategory(row.DstCategory.String))
	default:
		return domain.Node{}, fmt.Errorf("unknown token kind %q", row.DstTokenKind)
	}
	switch row.DstKind {
	case "continue":
		return domain.Continue(token), nil
	case "end":
		return domain.End(token), nil
	default:
		// start is never a destination
		return domain.Node{}, fmt.Errorf("unknown destination kind %q", row.DstKind)
	}
}

func kindColumn(k domain.NodeKind) string {
	switch k {
	case domain.NodeStart:
		return "start"
	case domain.NodeEnd:
		return "end"
	default:
		return "continue"
	}
}
