package scene

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// PrefixNode is the typeid prefix of every node id.
const PrefixNode = "node"

// NewID returns a fresh node id such as node_01h455vb4pex5vsknk084sn02q.
func NewID() string {
	return typeid.MustGenerate(PrefixNode).String()
}

// ValidateID checks that id is a well formed node id.
func ValidateID(id string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid node id %q: %w", id, err)
	}
	if parsed.Prefix() != PrefixNode {
		return fmt.Errorf("expected prefix %q but got %q in id %q", PrefixNode, parsed.Prefix(), id)
	}
	return nil
}
