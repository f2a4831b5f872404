package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	ErrNotFound    = errors.New("db: document not found")
	ErrInvalidID   = errors.New("db: invalid document id")
	ErrDuplicate   = errors.New("db: duplicate key")
)

// Op constants name the failed operation for error context.
const (
	OpInsert      = "insertOne"
	OpFind        = "find"
	OpFindOne     = "findOne"
	OpReplace     = "replaceOne"
	OpDelete      = "findOneAndDelete"
	OpCount       = "countDocuments"
	OpAggregate   = "aggregate"
	OpCreateIndex = "createIndexes"
	OpDecode      = "decode"
	OpPing        = "ping"

	OpGet  = "GET"
	OpSet  = "SET"
	OpDel  = "DEL"
	OpScan = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
