package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	Path     string `yaml:"path" validate:"required,startswith=/"`
	NodeType string `json:"nodeType" validate:"required"`
	Title    string `form:"title" validate:"max=5"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&testNode{Path: "/sites", NodeType: "Neos.Neos:Document"}))

	err := Struct(&testNode{Path: "sites", Title: "too long"})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errors{
		"path":     "The field 'path' must start with '/'.",
		"nodeType": "The field 'nodeType' is required.",
		"title":    "The field 'title' must be no longer than 5 characters.",
	}, errs)
	assert.Equal(t,
		"The field 'nodeType' is required. The field 'path' must start with '/'. The field 'title' must be no longer than 5 characters.",
		err.Error())
}

func TestValidateStructLanguage(t *testing.T) {
	errs := ValidateStruct(&testNode{Path: "/a"}, "de")
	assert.Equal(t, map[string]string{"nodeType": "Das Feld 'nodeType' ist erforderlich."}, errs)

	errs = ValidateStruct(&testNode{Path: "/a", NodeType: "x", Title: "1234567"}, "fr")
	assert.Equal(t, "The field 'title' must be no longer than 5 characters.", errs["title"])

	assert.Empty(t, ValidateStruct(&testNode{Path: "/a", NodeType: "x"}))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("/sites/acme", "required,startswith=/"))
	assert.Error(t, Var("sites", "required,startswith=/"))
	assert.Error(t, Var("", "required,startswith=/"))
}

func TestBindingValidator(t *testing.T) {
	v := Binding()

	assert.NoError(t, v.ValidateStruct("not a struct"))
	assert.NoError(t, v.ValidateStruct((*testNode)(nil)))
	assert.NoError(t, v.ValidateStruct(testNode{Path: "/a", NodeType: "x"}))

	var errs Errors
	require.ErrorAs(t, v.ValidateStruct(&testNode{Path: "/a"}), &errs)
	assert.Contains(t, errs, "nodeType")

	err := v.ValidateStruct([]testNode{{Path: "/a", NodeType: "x"}, {Path: "b", NodeType: "x"}})
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "path")

	assert.NotNil(t, v.Engine())
}
