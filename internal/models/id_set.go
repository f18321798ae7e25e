package model

import "gorm.io/datatypes"

// IDSet is an unordered set of document ids persisted as a JSON array.
type IDSet = datatypes.JSONSlice[string]

func NewIDSet(ids ...string) IDSet {
	set := IDSet{}
	for _, id := range ids {
		set = SetAdd(set, id)
	}
	return set
}

func SetContains(set IDSet, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// SetAdd appends id unless it is already present.
func SetAdd(set IDSet, id string) IDSet {
	if SetContains(set, id) {
		return set
	}
	out := make(IDSet, 0, len(set)+1)
	out = append(out, set...)
	return append(out, id)
}

func SetRemove(set IDSet, id string) IDSet {
	out := make(IDSet, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
