package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPerformer(t *testing.T) {
	cases := []struct {
		label string
		want  PerformerType
	}{
		{"Frontend Developer", PerformerFrontend},
		{"Front-End Engineer", PerformerFrontend},
		{"Senior FE", PerformerFrontend},
		{"front dev", PerformerFrontend},
		{"FE/BE Fullstack", PerformerFrontend},
		{"Backend Developer", PerformerBackend},
		{"Back-End Engineer", PerformerBackend},
		{"BE lead", PerformerBackend},
		{"Back office", PerformerBackend},
		{"Fronted Developer", PerformerOther},
		{"Safety Engineer", PerformerOther},
		{"Feedback Analyst", PerformerOther},
		{"Beta Tester", PerformerOther},
		{"QA Engineer", PerformerOther},
		{"", PerformerOther},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPerformer(tc.label))
		})
	}
}
