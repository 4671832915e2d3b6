// Package display renders human readable views of a search for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brendan.keane/imdburl/pkg/imdb"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B47E0")).
			Padding(0, 2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ABB2BF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF")).
			MarginTop(1)

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98C379"))

	excludeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75")).
			Bold(true)

	codeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2C323C")).
			Foreground(lipgloss.Color("#ABB2BF")).
			Padding(0, 1)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B47E0")).
			Padding(1).
			MarginTop(1).
			MarginBottom(1)
)

// paramDescriptions explains each query parameter in the explain view
var paramDescriptions = map[string]string{
	imdb.ParamGenres:      "genres to include, '!' marks an exclusion",
	imdb.ParamNumVotes:    "vote count range (min,max)",
	imdb.ParamUserRating:  "user rating range (min,max)",
	imdb.ParamReleaseDate: "release date range (start,end)",
	imdb.ParamCountries:   "country codes, '!' marks an exclusion",
	imdb.ParamRuntime:     "runtime range in minutes (min,max)",
	imdb.ParamSort:        "sort key and direction",
	imdb.ParamTitleType:   "title types",
	imdb.ParamKeywords:    "excluded keywords",
	imdb.ParamHas:         "only titles with awards",
}

// Explanation is everything the explain view shows for one build
type Explanation struct {
	Source   string
	Params   imdb.QueryParams
	Keywords string // encoded keywords value, as appended to the URL
	Awards   bool
	URL      string
	Encoding imdb.Encoding
}

// Displayer renders explain and catalog views
type Displayer struct{}

func NewDisplayer() *Displayer {
	return &Displayer{}
}

// RenderExplain shows each parameter with its meaning and the final URL
func (d *Displayer) RenderExplain(e Explanation) string {
	var output strings.Builder

	output.WriteString(titleStyle.Render(" imdb search "))
	output.WriteString("\n\n")
	if e.Source != "" {
		output.WriteString(summaryStyle.Render("query: " + e.Source))
		output.WriteString("\n")
	}
	output.WriteString(summaryStyle.Render("encoding: " + e.Encoding.String()))
	output.WriteString("\n")

	output.WriteString(sectionStyle.Render("Parameters"))
	output.WriteString("\n\n")
	if len(e.Params) == 0 {
		output.WriteString(summaryStyle.Render("  no filters set"))
		output.WriteString("\n")
	}
	for _, p := range e.Params {
		output.WriteString(renderParam(p.Name, p.Value))
	}

	if e.Keywords != "" || e.Awards {
		output.WriteString(sectionStyle.Render("Suffix"))
		output.WriteString("\n\n")
		if e.Keywords != "" {
			output.WriteString(renderParam(imdb.ParamKeywords, e.Keywords))
		}
		if e.Awards {
			output.WriteString(renderParam(imdb.ParamHas, "awards"))
		}
	}

	output.WriteString(sectionStyle.Render("URL"))
	output.WriteString("\n\n")
	output.WriteString(urlStyle.Render(e.URL))

	return boxStyle.Render(output.String())
}

func renderParam(name, value string) string {
	var output strings.Builder

	output.WriteString("  • ")
	output.WriteString(paramStyle.Render(name))
	output.WriteString(" ")
	output.WriteString(codeStyle.Render(value))

	if strings.Contains(value, "!") {
		output.WriteString(" ")
		output.WriteString(excludeStyle.Render("excludes"))
	}
	output.WriteString("\n")

	if desc, ok := paramDescriptions[name]; ok {
		output.WriteString(summaryStyle.Render(fmt.Sprintf("      %s", desc)))
		output.WriteString("\n")
	}

	return output.String()
}

// RenderCatalog lists the accepted values for one catalog
func (d *Displayer) RenderCatalog(name string, values []string) string {
	var output strings.Builder

	output.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", name, len(values))))
	output.WriteString("\n\n")
	for _, v := range values {
		output.WriteString("  ")
		output.WriteString(paramStyle.Render(v))
		output.WriteString("\n")
	}

	return output.String()
}

// RenderCountries lists country names with their codes
func (d *Displayer) RenderCountries(names []string) string {
	var output strings.Builder

	output.WriteString(sectionStyle.Render(fmt.Sprintf("countries (%d)", len(names))))
	output.WriteString("\n\n")
	for _, name := range names {
		code, _ := imdb.CountryCode(name)
		output.WriteString("  ")
		output.WriteString(codeStyle.Render(fmt.Sprintf("%-4s", code)))
		output.WriteString(" ")
		output.WriteString(paramStyle.Render(name))
		output.WriteString("\n")
	}

	return output.String()
}
