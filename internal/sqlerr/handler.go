package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/go-profile/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped sqlerr.Code for a given error, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// ConvertPgError converts a pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts a database error into the error returned to clients.
//
// An *errs.HTTPError is returned unchanged. Unique and not-null violations
// become 400s with field errors shaped like failed validation rules. A
// missing row becomes a 404 naming the entity when the repository prefixed
// the error with "table:<name>:". Everything else is a 500 without details.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return constraintError(ConvertPgError(pgerr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return notFoundError(err)
	}

	return errs.NewInternalServerError()
}

func constraintError(sqlErr *Error) error {
	entity := entityName(sqlErr.TableName)

	switch sqlErr.Code {
	case UniqueViolation:
		// Two requests raced for the same value after both passed the
		// unique rule.
		code := errorCode(sqlErr.TableName, "ALREADY_EXISTS")
		column := uniqueColumn(sqlErr.TableName, sqlErr.ConstraintName)
		if column == "" {
			return errs.NewBadRequestError(
				fmt.Sprintf("A %s with this identifier already exists", entity), true, &code, nil, nil)
		}
		return errs.NewBadRequestError(
			fmt.Sprintf("A %s with this %s already exists", entity, humanize(column)), true, &code,
			[]errs.FieldError{{Field: column, Error: "has already been taken"}}, nil)

	case NotNullViolation:
		code := errorCode(sqlErr.TableName, "REQUIRED")
		column := strings.ToLower(sqlErr.ColumnName)
		if column == "" {
			return errs.NewBadRequestError("A required field is missing", true, &code, nil, nil)
		}
		return errs.NewBadRequestError(
			fmt.Sprintf("The %s is required", humanize(column)), true, &code,
			[]errs.FieldError{{Field: column, Error: "is required"}}, nil)
	}

	return errs.NewInternalServerError()
}

func notFoundError(err error) error {
	_, rest, ok := strings.Cut(err.Error(), "table:")
	if !ok {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}
	table, _, _ := strings.Cut(rest, ":")
	return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName(table)), true, nil)
}

// errorCode builds codes like USER_ALREADY_EXISTS from the table name.
func errorCode(table, action string) string {
	if table == "" {
		return "RECORD_" + action
	}
	return strings.ToUpper(singular(table)) + "_" + action
}

func entityName(table string) string {
	if table == "" {
		return "Record"
	}
	return humanize(singular(table))
}

func singular(table string) string {
	if len(table) > 1 {
		return strings.TrimSuffix(table, "s")
	}
	return table
}

// humanize turns snake_case into Title Case: "email_address" -> "Email Address".
func humanize(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueColumn recovers the column from PostgreSQL's default unique
// constraint name, <table>_<column>_key.
func uniqueColumn(table, constraint string) string {
	column, ok := strings.CutSuffix(constraint, "_key")
	if !ok || table == "" {
		return ""
	}
	column, ok = strings.CutPrefix(column, table+"_")
	if !ok {
		return ""
	}
	return column
}
