package domain

import (
	"strconv"
	"time"
)

// SalesRecord represents one row of the loaded sales table
type SalesRecord struct {
	Store       StoreID   `json:"store"`
	Dept        string    `json:"dept,omitempty"`
	Date        time.Time `json:"date"`
	WeeklySales float64   `json:"weekly_sales"`
}

// StoreID is a store identifier as it appeared in the source table.
// Datasets are inconsistent about typing: some carry numeric store ids,
// others free-form strings. The tag records which form was parsed so that
// filters can compare numerically when both sides are numeric and fall
// back to exact string comparison otherwise.
type StoreID struct {
	Num     int64  `json:"-"`
	Str     string `json:"-"`
	Numeric bool   `json:"-"`
}

// ParseStoreID builds a StoreID from a raw cell value. A value that parses
// as a base-10 integer becomes a numeric id; anything else is kept verbatim.
func ParseStoreID(raw string) StoreID {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return StoreID{Num: n, Str: raw, Numeric: true}
	}
	return StoreID{Str: raw}
}

// Matches reports whether the id matches a filter value, applying the
// numeric-or-string dual comparison rule.
func (id StoreID) Matches(filter string) bool {
	if n, err := strconv.ParseInt(filter, 10, 64); err == nil {
		return id.Numeric && id.Num == n
	}
	return id.String() == filter
}

// String returns the external representation of the id.
func (id StoreID) String() string {
	if id.Numeric {
		return strconv.FormatInt(id.Num, 10)
	}
	return id.Str
}

// Equal reports whether two ids refer to the same store.
func (id StoreID) Equal(other StoreID) bool {
	if id.Numeric && other.Numeric {
		return id.Num == other.Num
	}
	return id.String() == other.String()
}

// Less orders ids numerically when both are numeric, lexically otherwise.
// Numeric ids sort before string ids so mixed tables still order stably.
func (id StoreID) Less(other StoreID) bool {
	if id.Numeric && other.Numeric {
		return id.Num < other.Num
	}
	if id.Numeric != other.Numeric {
		return id.Numeric
	}
	return id.Str < other.Str
}

// MarshalJSON emits the id in its source form: numeric ids as JSON numbers,
// string ids as JSON strings.
func (id StoreID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(strconv.FormatInt(id.Num, 10)), nil
	}
	return []byte(strconv.Quote(id.Str)), nil
}
