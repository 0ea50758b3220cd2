package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Protocole d'urgence", "protocole-d-urgence"},
		{"  Premiers   Secours  ", "premiers-secours"},
		{"RCP / Défibrillation", "rcp-d-fibrillation"},
		{"Tri des patients (niveau 2)", "tri-des-patients-niveau-2"},
		{"---", ""},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}
