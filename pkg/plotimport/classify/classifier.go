package classify

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// DefaultSampleSize is the number of non-missing values inspected per column.
const DefaultSampleSize = 5

// Config controls column classification.
type Config struct {
	SampleSize int
	Fallback   FallbackLayout
}

// DefaultConfig returns the standard classification settings.
func DefaultConfig() Config {
	return Config{
		SampleSize: DefaultSampleSize,
		Fallback:   DefaultFallbackLayout(),
	}
}

// SourceFallback marks a decision made by the positional fallback pass.
const SourceFallback = "fallback"

// SourceFixed marks the fixed plot column.
const SourceFixed = "fixed"

// SourceSuperseded marks a column whose role was taken by a later column.
const SourceSuperseded = "superseded"

// Decision explains why a role was given to a column.
type Decision struct {
	Column int               `json:"column"`
	Name   string            `json:"name"`
	Role   models.ColumnRole `json:"role"`
	// Source is the rule name, SourceFallback or SourceFixed.
	Source  string   `json:"source"`
	Samples []string `json:"samples,omitempty"`
}

// Result is the output of Classify.
type Result struct {
	Assignment models.RoleAssignment `json:"assignment"`
	Decisions  []Decision            `json:"decisions"`
}

// Classifier assigns roles to table columns.
type Classifier struct {
	cfg    Config
	rules  []Rule
	logger zerolog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for classification decisions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithRules replaces the heuristic rules.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) { c.rules = rules }
}

// New creates a Classifier.
func New(cfg Config, opts ...Option) *Classifier {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	c := &Classifier{
		cfg:    cfg,
		rules:  DefaultRules(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify assigns roles with the default configuration.
func Classify(t *models.RawTable) Result {
	return New(DefaultConfig()).Classify(t)
}

// Classify runs the heuristic pass over every non-plot column and then
// fills still-unresolved roles from the fallback layout.
func (c *Classifier) Classify(t *models.RawTable) Result {
	assignment := models.NewRoleAssignment()
	decisions := []Decision{{
		Column: models.PlotColumn,
		Name:   columnName(t, models.PlotColumn),
		Role:   models.RolePlot,
		Source: SourceFixed,
	}}

	// Heuristic pass. A later column matching the same role takes it over.
	byRole := make(map[models.ColumnRole]int)
	for col := 1; col < t.NumColumns(); col++ {
		samples := c.sample(t, col)
		d := Decision{Column: col, Name: columnName(t, col), Role: models.RoleUnknown, Samples: samples}
		if rule, ok := matchAny(c.rules, samples); ok {
			d.Role = rule.Role
			d.Source = rule.Name
			assignment.Set(rule.Role, col)
			if prev, seen := byRole[rule.Role]; seen {
				decisions[prev].Role = models.RoleUnknown
				decisions[prev].Source = SourceSuperseded
				c.logger.Debug().
					Int("column", decisions[prev].Column).
					Int("replaced_by", col).
					Str("role", string(rule.Role)).
					Msg("column role superseded")
			}
			byRole[rule.Role] = len(decisions)
		}
		decisions = append(decisions, d)
	}

	decisions = c.applyFallback(t, &assignment, decisions)

	c.logger.Info().
		Int("plot", assignment.Plot).
		Int("email", assignment.Email).
		Int("name", assignment.Name).
		Int("phone", assignment.Phone).
		Msg("columns classified")

	return Result{Assignment: assignment, Decisions: decisions}
}

func (c *Classifier) applyFallback(t *models.RawTable, a *models.RoleAssignment, decisions []Decision) []Decision {
	width := t.NumColumns()
	layout := c.cfg.Fallback

	// decisions is indexed by column until fallback appends extra roles.
	assign := func(role models.ColumnRole, col int) {
		a.Set(role, col)
		if decisions[col].Role == models.RoleUnknown {
			decisions[col].Role = role
			decisions[col].Source = SourceFallback
		} else {
			decisions = append(decisions, Decision{
				Column: col,
				Name:   columnName(t, col),
				Role:   role,
				Source: SourceFallback,
			})
		}
		c.logger.Debug().Str("role", string(role)).Int("column", col).Msg("role taken from fallback layout")
	}

	if !a.Resolved(models.RoleEmail) {
		probe := t.Cell(0, layout.EmailProbeColumn).String()
		if col, ok := layout.emailColumn(width, probe); ok {
			assign(models.RoleEmail, col)
		}
	}
	if !a.Resolved(models.RoleName) {
		if col, ok := layout.nameColumn(width); ok {
			assign(models.RoleName, col)
		}
	}
	if !a.Resolved(models.RolePhone) {
		if col, ok := layout.phoneColumn(width); ok {
			assign(models.RolePhone, col)
		}
	}
	return decisions
}

// sample collects the first non-missing values of a column as text.
func (c *Classifier) sample(t *models.RawTable, col int) []string {
	samples := make([]string, 0, c.cfg.SampleSize)
	for row := 0; row < t.NumRows() && len(samples) < c.cfg.SampleSize; row++ {
		cell := t.Cell(row, col)
		if cell.IsMissing() {
			continue
		}
		samples = append(samples, cell.Text)
	}
	return samples
}

func columnName(t *models.RawTable, col int) string {
	if col < 0 || col >= t.NumColumns() {
		return ""
	}
	return t.Columns[col].Name
}
