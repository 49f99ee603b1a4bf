package id

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// ErrAlreadyInitialized is returned when Init is called again with a
// different node ID.
var ErrAlreadyInitialized = errors.New("id generator already initialized with another node")

var (
	mu     sync.RWMutex
	node   *snowflake.Node
	nodeID int64
)

// Init initializes the Snowflake node with the given node ID. Calling it
// again with the same ID is a no-op.
func Init(id int64) error {
	mu.Lock()
	defer mu.Unlock()

	if node != nil {
		if id != nodeID {
			return fmt.Errorf("%w: %d", ErrAlreadyInitialized, nodeID)
		}
		return nil
	}

	n, err := snowflake.NewNode(id)
	if err != nil {
		return fmt.Errorf("failed to create snowflake node: %w", err)
	}
	node, nodeID = n, id
	return nil
}

// New generates a new time-ordered int64 ID. It panics when Init has not
// succeeded.
func New() int64 {
	mu.RLock()
	n := node
	mu.RUnlock()

	if n == nil {
		panic("id: New called before Init")
	}
	return n.Generate().Int64()
}
