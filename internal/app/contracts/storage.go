package contracts

import "context"

type ObjectStorage interface {
	PutJSON(ctx context.Context, objectName string, value interface{}) error
	// GetJSON decodes the object into dest. found is false when the object
	// does not exist.
	GetJSON(ctx context.Context, objectName string, dest interface{}) (found bool, err error)
}
