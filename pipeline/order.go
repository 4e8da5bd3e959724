// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"slices"
)

// reorderBuffer releases items in sequence order. It is owned by the
// ordering goroutine and is not safe for concurrent use.
type reorderBuffer struct {
	pending map[uint64]*Item
	next    uint64
}

func newReorderBuffer() *reorderBuffer {
	return &reorderBuffer{
		pending: make(map[uint64]*Item),
	}
}

// push buffers the item and returns every item that is now in order
func (b *reorderBuffer) push(item *Item) []*Item {
	if item.sequence != b.next {
		b.pending[item.sequence] = item
		return nil
	}
	ret := []*Item{item}
	b.next++
	for {
		next, ok := b.pending[b.next]
		if !ok {
			return ret
		}
		delete(b.pending, b.next)
		ret = append(ret, next)
		b.next++
	}
}

// flush returns the remaining items in sequence order. Sequence gaps are left
// by items that Abort dropped before they were decoded.
func (b *reorderBuffer) flush() []*Item {
	ret := make([]*Item, 0, len(b.pending))
	for _, item := range b.pending {
		ret = append(ret, item)
	}
	slices.SortFunc(ret, func(a, b *Item) int {
		switch {
		case a.sequence < b.sequence:
			return -1
		case a.sequence > b.sequence:
			return 1
		default:
			return 0
		}
	})
	clear(b.pending)
	return ret
}

func (b *reorderBuffer) len() int {
	return len(b.pending)
}
