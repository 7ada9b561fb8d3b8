// Package diff compares two versions of a list tree by item id.
package diff

import (
	"fmt"
	"sort"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// ComputeDiff compares two trees and returns a DiffResult
func ComputeDiff(before, after []*model.ListItem) *DiffResult {
	return analyzeChanges(collect(before), collect(after))
}

// Empty reports whether the two trees were identical
func (r *DiffResult) Empty() bool {
	return len(r.NewItems) == 0 && len(r.DeletedItems) == 0 && len(r.ModifiedItems) == 0
}

// Summary returns a one-line description such as "1 modified, 2 added, 0 deleted"
func (r *DiffResult) Summary() string {
	return fmt.Sprintf("%d modified, %d added, %d deleted",
		len(r.ModifiedItems), len(r.NewItems), len(r.DeletedItems))
}

// collect indexes every item of the tree by id. The first occurrence of a
// duplicated id wins.
func collect(items []*model.ListItem) map[string]*ItemData {
	out := make(map[string]*ItemData)
	var walk func(items []*model.ListItem, parentID string)
	walk = func(items []*model.ListItem, parentID string) {
		for pos, item := range items {
			if item == nil {
				continue
			}
			if _, exists := out[item.ID]; !exists {
				out[item.ID] = itemData(item, parentID, pos)
			}
			walk(item.Children, item.ID)
		}
	}
	walk(items, "")
	return out
}

func itemData(item *model.ListItem, parentID string, pos int) *ItemData {
	return &ItemData{
		ID:          item.ID,
		Text:        item.Text,
		IsHeader:    item.IsHeader,
		Status:      refString(item.PrimaryIcon),
		Secondary:   refString(item.SecondaryIcon),
		Description: item.Description,
		Detail:      item.Detail,
		Visible:     item.IsVisible(),
		ParentID:    parentID,
		Position:    pos,
	}
}

func refString(ref *model.IconRef) string {
	if ref == nil {
		return ""
	}
	return ref.SetID + ":" + ref.IconID
}

// analyzeChanges compares two sets of item data
func analyzeChanges(data1, data2 map[string]*ItemData) *DiffResult {
	result := &DiffResult{
		NewItems:      make(map[string]*ItemData),
		DeletedItems:  make(map[string]*ItemData),
		ModifiedItems: make(map[string]*ItemChange),
	}

	rank1 := sharedRanks(data1, data2)
	rank2 := sharedRanks(data2, data1)

	// Find new and modified items
	for id, item2 := range data2 {
		item1, exists := data1[id]
		if !exists {
			result.NewItems[id] = item2
			continue
		}
		change := compareItems(item1, item2)
		if item1.ParentID != item2.ParentID || rank1[id] != rank2[id] {
			if change == nil {
				change = &ItemChange{Item: item2, OldItem: item1}
			}
			change.StructureChanged = true
			change.OldParentID = item1.ParentID
			change.OldPosition = item1.Position
		}
		if change != nil {
			result.ModifiedItems[id] = change
		}
	}

	// Find deleted items
	for id, item1 := range data1 {
		if _, exists := data2[id]; !exists {
			result.DeletedItems[id] = item1
		}
	}

	return result
}

// sharedRanks numbers every item of data among the siblings that also
// exist in other, so inserting or deleting a sibling does not count as a
// move of the items after it
func sharedRanks(data, other map[string]*ItemData) map[string]int {
	byParent := make(map[string][]*ItemData)
	for id, item := range data {
		if _, ok := other[id]; ok {
			byParent[item.ParentID] = append(byParent[item.ParentID], item)
		}
	}
	ranks := make(map[string]int, len(data))
	for _, siblings := range byParent {
		sort.Slice(siblings, func(i, j int) bool {
			return siblings[i].Position < siblings[j].Position
		})
		for rank, item := range siblings {
			ranks[item.ID] = rank
		}
	}
	return ranks
}

// compareItems checks if the content of an item changed and returns the changes
func compareItems(old, new *ItemData) *ItemChange {
	change := &ItemChange{
		Item:    new,
		OldItem: old,
	}

	hasChange := false

	if old.Text != new.Text {
		change.TextChanged = true
		change.OldText = old.Text
		hasChange = true
	}

	if old.IsHeader != new.IsHeader {
		change.KindChanged = true
		hasChange = true
	}

	if old.Status != new.Status {
		change.StatusChanged = true
		change.OldStatus = old.Status
		hasChange = true
	}

	if old.Secondary != new.Secondary {
		change.SecondaryChanged = true
		change.OldSecondary = old.Secondary
		hasChange = true
	}

	if old.Description != new.Description {
		change.DescriptionChanged = true
		hasChange = true
	}

	if old.Detail != new.Detail {
		change.DetailChanged = true
		hasChange = true
	}

	if old.Visible != new.Visible {
		change.VisibilityChanged = true
		hasChange = true
	}

	if !hasChange {
		return nil
	}

	return change
}
