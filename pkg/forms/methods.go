package forms

import (
	"net/http"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// MethodSelectionID identifies the method selection form in a Catalog.
const MethodSelectionID = "method-selection"

// Method option names. They are posted verbatim, so they must stay stable.
const (
	MethodDescriptiveStats = "std_desc_stats"
	MethodDataRanking      = "std_data_ranking"
	MethodWGCNA            = "WGCNA"
	MethodCovariance       = "std_cov"
	MethodPearson          = "std_corr"
	MethodSpearman         = "spr_corr"
	MethodKendallTau       = "kt_corr"
)

// Method groups.
const (
	// GroupInitial holds methods applied to each initial data set.
	GroupInitial = "initial"
	// GroupCombined holds methods applied to combined data sets.
	GroupCombined = "combined"
)

// MethodNames lists the options in declaration order.
var MethodNames = []string{
	MethodDescriptiveStats,
	MethodDataRanking,
	MethodWGCNA,
	MethodCovariance,
	MethodPearson,
	MethodSpearman,
	MethodKendallTau,
}

// MethodSelection returns the method selection form: seven options that all
// default to enabled, followed by the Analyze action.
func MethodSelection() model.Form {
	return model.Form{
		ID:       MethodSelectionID,
		Title:    "Analysis Methods",
		Endpoint: "/analysis/methods",
		Method:   http.MethodPost,
		Fields: []model.Field{
			model.Boolean(MethodDescriptiveStats, "Standard Descriptive Stats", true).InGroup(GroupInitial),
			model.Boolean(MethodDataRanking, "Standard Data Ranking", true).InGroup(GroupInitial),
			model.Boolean(MethodWGCNA, "Weighted Correlation Network Analysis", true).InGroup(GroupInitial),
			model.Boolean(MethodCovariance, "Standard Covariance", true).InGroup(GroupInitial),
			model.Boolean(MethodPearson, "Standard Correlation (Pearson)", true).InGroup(GroupCombined),
			model.Boolean(MethodSpearman, "Spearman Rank Correlation", true).InGroup(GroupCombined),
			model.Boolean(MethodKendallTau, "Kendall Tau Correlation", true).InGroup(GroupCombined),
			model.Submit("Analyze"),
		},
		Metadata: map[string]string{
			"group." + GroupInitial:  "Methods applied to initial data sets",
			"group." + GroupCombined: "Methods applied to combined data sets",
		},
	}
}

// Methods is the typed view of a validated method selection.
type Methods struct {
	DescriptiveStats bool `json:"std_desc_stats"`
	DataRanking      bool `json:"std_data_ranking"`
	WGCNA            bool `json:"WGCNA"`
	Covariance       bool `json:"std_cov"`
	Pearson          bool `json:"std_corr"`
	Spearman         bool `json:"spr_corr"`
	KendallTau       bool `json:"kt_corr"`
}

// DecodeMethods reads the method options from a validation result.
func DecodeMethods(result validation.Result) Methods {
	b := result.Bools
	return Methods{
		DescriptiveStats: b[MethodDescriptiveStats],
		DataRanking:      b[MethodDataRanking],
		WGCNA:            b[MethodWGCNA],
		Covariance:       b[MethodCovariance],
		Pearson:          b[MethodPearson],
		Spearman:         b[MethodSpearman],
		KendallTau:       b[MethodKendallTau],
	}
}

// Map returns the option name to value mapping.
func (m Methods) Map() map[string]bool {
	return map[string]bool{
		MethodDescriptiveStats: m.DescriptiveStats,
		MethodDataRanking:      m.DataRanking,
		MethodWGCNA:            m.WGCNA,
		MethodCovariance:       m.Covariance,
		MethodPearson:          m.Pearson,
		MethodSpearman:         m.Spearman,
		MethodKendallTau:       m.KendallTau,
	}
}

// Selected lists the enabled option names in declaration order.
func (m Methods) Selected() []string {
	values := m.Map()
	var out []string
	for _, name := range MethodNames {
		if values[name] {
			out = append(out, name)
		}
	}
	return out
}
