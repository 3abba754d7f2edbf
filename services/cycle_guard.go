package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCycle rejects a folder move that would make a folder its own ancestor.
var ErrCycle = errors.New("cannot move a folder into itself or its own descendant")

// maxAncestorDepth bounds parent-chain walks so a corrupted tree cannot hang
// a request.
const maxAncestorDepth = 1024

// canMoveFolder validates a proposed reparent of folderID under targetID.
// A nil target (move to top level) is always allowed. Otherwise the walk
// climbs target's ancestor chain toward the root; finding folderID anywhere
// in it means the move would close a cycle. O(depth of target).
//
// The check and the subsequent reparent write are not atomic together;
// a concurrent structural change can invalidate the verdict.
func (s *HierarchyService) canMoveFolder(ctx context.Context, ownerID, folderID primitive.ObjectID, targetID *primitive.ObjectID) error {
	if targetID == nil {
		return nil
	}
	if *targetID == folderID {
		return ErrCycle
	}

	current := *targetID
	for depth := 0; depth < maxAncestorDepth; depth++ {
		folder, err := s.store.GetFolder(ctx, ownerID, current)
		if err != nil {
			return fmt.Errorf("failed to walk ancestor chain: %w", err)
		}
		if folder.ParentID == nil {
			return nil
		}
		if *folder.ParentID == folderID {
			return ErrCycle
		}
		current = *folder.ParentID
	}
	return fmt.Errorf("ancestor chain deeper than %d, refusing move", maxAncestorDepth)
}
