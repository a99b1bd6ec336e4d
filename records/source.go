package records

import (
	"context"
	"embed"
	"fmt"
	"math"

	"github.com/zeptools/informes/db/sqldb"
)

const Group = "records"

var (
	StmtExpedientes       = sqldb.StmtKey(Group, "expedientes")
	StmtCoberturaDetalles = sqldb.StmtKey(Group, "cobertura_detalles")
	StmtTitularizaciones  = sqldb.StmtKey(Group, "titularizaciones")
)

//go:embed sql
var sqlFS embed.FS

func init() {
	sqldb.RegisterGroup(sqlFS, Group)
}

// Source lists records matching a free-text filter; "" means all.
// At most limit records come back; limit <= 0 means no limit.
type Source[R any] interface {
	List(ctx context.Context, filter string, limit int) ([]R, error)
}

// SQLSource runs one stored statement (records/sql/<name>.<dbType>). The
// statement takes the filter twice (once to detect "no filter", once to
// match) and then the row limit.
type SQLSource[R any, RP sqldb.Scannable[R]] struct {
	Client sqldb.Client
	Stmt   string // key in Client.Stmts()
}

func NewSQLSource[R any, RP sqldb.Scannable[R]](client sqldb.Client, stmt string) *SQLSource[R, RP] {
	return &SQLSource[R, RP]{Client: client, Stmt: stmt}
}

func (s *SQLSource[R, RP]) List(ctx context.Context, filter string, limit int) ([]R, error) {
	raw, ok := s.Client.Stmts().Get(s.Stmt)
	if !ok {
		return nil, fmt.Errorf("records: statement %q not loaded", s.Stmt)
	}
	if limit <= 0 {
		limit = math.MaxInt32
	}
	items, err := sqldb.QueryItems[R, RP](ctx, s.Client, raw, filter, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("records: %s: %w", s.Stmt, err)
	}
	return items, nil
}
