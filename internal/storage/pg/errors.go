package pg

import (
	"errors"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// wrapErr converts a driver error into a PersistenceError carrying the
// SQLSTATE and its class.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	pe := apperr.NewPersistence(op, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		pe.Code = pgErr.Code
		if class := errorClass(pgErr.Code); class != "" {
			pe.Op = op + " [" + class + "]"
		}
	}
	return pe
}

func errorClass(code string) string {
	switch {
	case code == pgerrcode.UniqueViolation:
		return "unique_violation"
	case pgerrcode.IsIntegrityConstraintViolation(code):
		return "integrity_constraint_violation"
	case pgerrcode.IsTransactionRollback(code):
		return "transaction_rollback"
	case pgerrcode.IsConnectionException(code):
		return "connection_exception"
	case pgerrcode.IsDataException(code):
		return "data_exception"
	case pgerrcode.IsProgramLimitExceeded(code):
		return "program_limit_exceeded"
	case pgerrcode.IsSyntaxErrororAccessRuleViolation(code):
		return "syntax_or_access_rule_violation"
	case code == pgerrcode.QueryCanceled:
		return "query_canceled"
	}
	return ""
}
