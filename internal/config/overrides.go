package config

import (
	"github.com/spf13/pflag"

	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/query"
)

// Overrides holds the filter flags that were set on the command line.
// Nil fields were not given and leave the query file value alone.
type Overrides struct {
	IncludeGenres    []string
	ExcludeGenres    []string
	MinVotes         *int
	MaxVotes         *int
	MinRating        *float64
	MaxRating        *float64
	StartDate        *string
	EndDate          *string
	IncludeCountries []string
	ExcludeCountries []string
	MinRuntime       *int
	MaxRuntime       *int
	SortType         *string
	SortOption       *string
	TitleTypes       []string
	ExcludeKeywords  []string
}

// Empty reports whether no filter flag was given
func (o Overrides) Empty() bool {
	return o.IncludeGenres == nil && o.ExcludeGenres == nil &&
		o.MinVotes == nil && o.MaxVotes == nil &&
		o.MinRating == nil && o.MaxRating == nil &&
		o.StartDate == nil && o.EndDate == nil &&
		o.IncludeCountries == nil && o.ExcludeCountries == nil &&
		o.MinRuntime == nil && o.MaxRuntime == nil &&
		o.SortType == nil && o.SortOption == nil &&
		o.TitleTypes == nil && o.ExcludeKeywords == nil
}

// Apply replaces the query file values that have a flag counterpart
func (o Overrides) Apply(f *query.File) {
	if o.IncludeGenres != nil {
		f.IncludeGenres = o.IncludeGenres
	}
	if o.ExcludeGenres != nil {
		f.ExcludeGenres = o.ExcludeGenres
	}
	if o.MinVotes != nil {
		f.MinVotes = o.MinVotes
	}
	if o.MaxVotes != nil {
		f.MaxVotes = o.MaxVotes
	}
	if o.MinRating != nil {
		f.MinRating = o.MinRating
	}
	if o.MaxRating != nil {
		f.MaxRating = o.MaxRating
	}
	if o.StartDate != nil {
		f.StartDate = query.Date(*o.StartDate)
	}
	if o.EndDate != nil {
		f.EndDate = query.Date(*o.EndDate)
	}
	if o.IncludeCountries != nil {
		f.IncludeCountries = o.IncludeCountries
	}
	if o.ExcludeCountries != nil {
		f.ExcludeCountries = o.ExcludeCountries
	}
	if o.MinRuntime != nil {
		f.MinRuntime = o.MinRuntime
	}
	if o.MaxRuntime != nil {
		f.MaxRuntime = o.MaxRuntime
	}
	if o.SortType != nil {
		f.SortType = *o.SortType
	}
	if o.SortOption != nil {
		f.SortOption = *o.SortOption
	}
	if o.TitleTypes != nil {
		f.TitleType = o.TitleTypes
	}
	if o.ExcludeKeywords != nil {
		f.ExcludeKeywords = o.ExcludeKeywords
	}
}

// loadOverrides reads only the filter flags the user actually changed
func loadOverrides(flags *pflag.FlagSet) (Overrides, error) {
	var o Overrides
	var err error

	stringSlices := []struct {
		name string
		dst  *[]string
	}{
		{FlagGenre, &o.IncludeGenres},
		{FlagExcludeGenre, &o.ExcludeGenres},
		{FlagTitleType, &o.TitleTypes},
	}
	for _, s := range stringSlices {
		if !flags.Changed(s.name) {
			continue
		}
		if *s.dst, err = flags.GetStringSlice(s.name); err != nil {
			return o, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to get %s flag", s.name)
		}
	}

	// Country names and keywords may contain commas, so they are not split
	stringArrays := []struct {
		name string
		dst  *[]string
	}{
		{FlagCountry, &o.IncludeCountries},
		{FlagExcludeCountry, &o.ExcludeCountries},
		{FlagExcludeKeyword, &o.ExcludeKeywords},
	}
	for _, s := range stringArrays {
		if !flags.Changed(s.name) {
			continue
		}
		if *s.dst, err = flags.GetStringArray(s.name); err != nil {
			return o, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to get %s flag", s.name)
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{FlagMinVotes, &o.MinVotes},
		{FlagMaxVotes, &o.MaxVotes},
		{FlagMinRuntime, &o.MinRuntime},
		{FlagMaxRuntime, &o.MaxRuntime},
	}
	for _, i := range ints {
		if !flags.Changed(i.name) {
			continue
		}
		v, err := flags.GetInt(i.name)
		if err != nil {
			return o, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to get %s flag", i.name)
		}
		*i.dst = &v
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{FlagMinRating, &o.MinRating},
		{FlagMaxRating, &o.MaxRating},
	}
	for _, f := range floats {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetFloat64(f.name)
		if err != nil {
			return o, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to get %s flag", f.name)
		}
		*f.dst = &v
	}

	strs := []struct {
		name string
		dst  **string
	}{
		{FlagStartDate, &o.StartDate},
		{FlagEndDate, &o.EndDate},
		{FlagSortType, &o.SortType},
		{FlagSortOption, &o.SortOption},
	}
	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return o, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to get %s flag", s.name)
		}
		*s.dst = &v
	}

	return o, nil
}
