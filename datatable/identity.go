package datatable

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// rowNamespace seeds the name-based UUIDs produced by UUIDIdentity.
var rowNamespace = uuid.MustParse("6f1c2b9e-5d0a-4e4f-9b57-3c2d8e1f0a77")

// IndexIdentity keys rows by their input position.
func IndexIdentity(index int, _ any) RowKey {
	return index
}

// UUIDIdentity keys rows by a name-based UUID of the record's JSON encoding.
// The key survives reordering and reloading. Records with identical content
// share a key; Map keys the later ones with DuplicateKey.
func UUIDIdentity(_ int, record any) RowKey {
	data, err := json.Marshal(record)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", record))
	}
	return uuid.NewSHA1(rowNamespace, data)
}

// PathIdentity keys rows by the value at path. Rows where the path is absent
// or holds an uncomparable value fall back to their input position.
func PathIdentity(path string) IdentityFunc {
	return func(index int, record any) RowKey {
		v, ok := Resolve(record, path)
		if !ok || checkKey(v) != nil {
			return index
		}
		return v
	}
}
