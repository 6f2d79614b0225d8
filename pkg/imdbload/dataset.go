package imdbload

import (
	"fmt"
	"strings"
)

// DatasetKind identifies one of the three fixed IMDb source files.
type DatasetKind string

const (
	DatasetName    DatasetKind = "name"    // name.basics: one row per person
	DatasetTitle   DatasetKind = "title"   // title.basics: one row per title
	DatasetRatings DatasetKind = "ratings" // title.ratings: one row per rated title
)

// columnMap is the complete translation from IMDb header field names
// (camelCase, as published) to destination column names (snake_case).
// The loader never derives columns from file contents; this map is the
// whole mapping contract.
var columnMap = map[string]string{
	"nconst":            "nconst",
	"primaryName":       "primary_name",
	"birthYear":         "birth_year",
	"deathYear":         "death_year",
	"primaryProfession": "primary_profession",
	"knownForTitles":    "known_for_titles",
	"tconst":            "tconst",
	"titleType":         "title_type",
	"primaryTitle":      "primary_title",
	"originalTitle":     "original_title",
	"isAdult":           "is_adult",
	"startYear":         "start_year",
	"endYear":           "end_year",
	"runtimeMinutes":    "runtime_minutes",
	"genres":            "genres",
	"averageRating":     "average_rating",
	"numVotes":          "num_votes",
}

// Dataset describes one fixed IMDb source file and its destination table.
type Dataset struct {
	// Kind distinguishes the dataset in flags, logs, and load history.
	Kind DatasetKind

	// Table is the unqualified destination table name.
	Table string

	// Fields are the source header field names in their published order.
	Fields []string
}

// Datasets returns the three datasets in load order: people first, then
// titles, then ratings. Callers may modify the returned slices freely.
func Datasets() []Dataset {
	return []Dataset{
		{
			Kind:  DatasetName,
			Table: "name_basics",
			Fields: []string{
				"nconst", "primaryName", "birthYear", "deathYear",
				"primaryProfession", "knownForTitles",
			},
		},
		{
			Kind:  DatasetTitle,
			Table: "title_basics",
			Fields: []string{
				"tconst", "titleType", "primaryTitle", "originalTitle",
				"isAdult", "startYear", "endYear", "runtimeMinutes", "genres",
			},
		},
		{
			Kind:   DatasetRatings,
			Table:  "title_ratings",
			Fields: []string{"tconst", "averageRating", "numVotes"},
		},
	}
}

// TableNames returns the destination table names in load order.
// This is also the truncation order.
func TableNames() []string {
	datasets := Datasets()
	names := make([]string, len(datasets))
	for i, d := range datasets {
		names[i] = d.Table
	}
	return names
}

// MapColumns translates source header field names to destination column
// names, preserving the input order. The field sets are fixed at compile
// time and no runtime input reaches this path, so an unknown field is a
// programmer error and panics.
func MapColumns(fields []string) []string {
	columns := make([]string, len(fields))
	for i, field := range fields {
		column, ok := columnMap[field]
		if !ok {
			panic(fmt.Sprintf("imdbload: no destination column for field %q", field))
		}
		columns[i] = column
	}
	return columns
}

// Columns returns the destination column names for the dataset's canonical
// field order.
func (d Dataset) Columns() []string {
	return MapColumns(d.Fields)
}

// ExpectedHeader returns the tab-joined canonical header line used by the
// soft header check.
func (d Dataset) ExpectedHeader() string {
	return strings.Join(d.Fields, "\t")
}
