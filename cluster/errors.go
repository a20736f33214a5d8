package cluster

import "errors"

var (
	ErrInvalidRecord  = errors.New("invalid record")
	ErrUnknownMetric  = errors.New("unknown size metric")
	ErrSchemaMismatch = errors.New("ratio set does not match schema")
	ErrUnknownSchema  = errors.New("unknown dataset schema")
	ErrInvalidSchema  = errors.New("invalid dataset schema")
)
