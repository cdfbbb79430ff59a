// Package sqlerr handles database driver errors.
//
// It inspects the error values reported by the SQL Server driver and
// classifies them, so the HTTP layer can distinguish "the pool could
// not be established" from "the query itself failed" without parsing
// driver messages.
package sqlerr

import (
	"errors"

	mssql "github.com/microsoft/go-mssqldb"
)

// Code is the classification of a database error.
type Code int

const (
	// Other covers errors that did not originate from the driver,
	// e.g. scan failures or closed connections without a server error.
	Other Code = iota

	// Connection covers failures to establish a session: bad
	// credentials, unreachable or unavailable databases.
	Connection

	// Execution covers server-reported statement failures: syntax
	// errors, missing objects, constraint violations, timeouts.
	Execution
)

// connectionErrNumbers are SQL Server error numbers that indicate the
// session itself could not be established rather than a statement failure.
var connectionErrNumbers = map[int32]bool{
	4060:  true, // cannot open database
	18456: true, // login failed for user
	18452: true, // login failed, untrusted domain
	40613: true, // database unavailable (Azure)
	10054: true, // connection forcibly closed
}

// Classify maps a driver error onto a Code.
//
// Any mssql.Error in the chain is a server-reported failure; its
// number decides between Connection and Execution. Everything else
// is Other.
func Classify(err error) Code {
	var driverErr mssql.Error
	if !errors.As(err, &driverErr) {
		return Other
	}
	if connectionErrNumbers[driverErr.Number] {
		return Connection
	}
	return Execution
}

// Number reports the SQL Server error number for a driver error,
// or 0 when err did not originate from the server.
func Number(err error) int32 {
	var driverErr mssql.Error
	if errors.As(err, &driverErr) {
		return driverErr.Number
	}
	return 0
}
