package resource

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedKind() *Kind {
	return NewKind("TheClass").
		Attribute("presence", Validates(Presence())).
		Attribute("numericality", Validates(Numericality())).
		Attribute("format", Validates(Format(regexp.MustCompile(`[a-z]+`)))).
		Attribute("inclusion", Validates(Inclusion("foo", "bar")))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name      string
		attribute string
		value     any
		wantErr   bool
	}{
		{"presence with value", "presence", "foo", false},
		{"presence missing", "presence", nil, true},
		{"presence blank", "presence", "   ", true},
		{"presence empty list", "presence", []any{}, true},
		{"presence false", "presence", false, true},
		{"presence zero", "presence", 0, false},

		{"numericality integer string", "numericality", "1", false},
		{"numericality decimal string", "numericality", "-1.5e3", false},
		{"numericality number", "numericality", 42, false},
		{"numericality letters", "numericality", "a", true},
		{"numericality missing", "numericality", nil, true},
		{"numericality bool", "numericality", true, true},
		{"numericality NaN string", "numericality", "NaN", true},
		{"numericality Inf string", "numericality", "Inf", true},
		{"numericality negative infinity string", "numericality", "-infinity", true},
		{"numericality NaN float", "numericality", math.NaN(), true},
		{"numericality infinite float", "numericality", math.Inf(1), true},

		{"format match", "format", "abcd", false},
		{"format digits", "format", "1234", true},
		{"format missing", "format", nil, true},

		{"inclusion member", "inclusion", "foo", false},
		{"inclusion other", "inclusion", "a", true},
		{"inclusion missing", "inclusion", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newValidatedKind().New(map[string]any{
				"presence":     "x",
				"numericality": 1,
				"format":       "abc",
				"inclusion":    "bar",
			})
			require.NoError(t, err)
			r.Set(tt.attribute, tt.value)

			valid := r.Validate()
			assert.Equal(t, !tt.wantErr, valid)
			if tt.wantErr {
				assert.NotEmpty(t, r.Errors().On(tt.attribute))
			} else {
				assert.Empty(t, r.Errors().On(tt.attribute))
			}

			// the other attributes are valid and have no entry
			for _, other := range []string{"presence", "numericality", "format", "inclusion"} {
				if other == tt.attribute {
					continue
				}
				_, ok := r.Errors()[other]
				assert.False(t, ok, "unexpected errors on %s", other)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	r, err := newValidatedKind().New(map[string]any{
		"numericality": "a",
		"format":       "1234",
		"inclusion":    "baz",
	})
	require.NoError(t, err)

	assert.False(t, r.Validate())
	assert.Equal(t, []string{"can't be blank"}, r.Errors().On("presence"))
	assert.Equal(t, []string{"is not a number"}, r.Errors().On("numericality"))
	assert.Equal(t, []string{"is invalid"}, r.Errors().On("format"))
	assert.Equal(t, []string{"is not included in the list"}, r.Errors().On("inclusion"))

	assert.Equal(t, []string{
		"format is invalid",
		"inclusion is not included in the list",
		"numericality is not a number",
		"presence can't be blank",
	}, r.Errors().FullMessages())

	err = r.Errors().Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 errors occurred")
	assert.Contains(t, err.Error(), "presence can't be blank")
}

func TestValidate_InclusionAcrossNumericTypes(t *testing.T) {
	k := NewKind("Level").
		Attribute("level", Type(Integer), Validates(Inclusion(1, 2, 3))).
		Attribute("ratio", Type(Float), Validates(Inclusion(0.5, 1)))

	tests := []struct {
		name  string
		level any
		ratio any
		valid bool
	}{
		{"coerced integers match plain ints", "2", 1, true},
		{"float matches an integer entry", 3, "1.0", true},
		{"zero is not included", 0, 0.5, false},
		{"integer outside the set", 4, 0.5, false},
		{"float outside the set", 1, 0.25, false},
		{"missing level", nil, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := k.New(map[string]any{"level": tt.level, "ratio": tt.ratio})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, r.Validate(), r.Errors().FullMessages())
		})
	}

	assert.Empty(t, Inclusion(1).Check(int64(1)))
	assert.Empty(t, Inclusion(int64(1)).Check(float64(1)))
	assert.Equal(t, []string{"is not included in the list"}, Inclusion(1).Check("1"))
}

func TestValidate_AllRulesRunWithoutShortCircuit(t *testing.T) {
	k := NewKind("Code").Attribute("code",
		Validates(Presence(), Numericality(), Format(regexp.MustCompile(`^[a-z]+$`))),
	)
	r, err := k.New(nil)
	require.NoError(t, err)

	assert.False(t, r.Validate())
	assert.Equal(t, []string{"can't be blank", "is not a number", "is invalid"}, r.Errors().On("code"))
}

func TestValidate_ReplacesPreviousResult(t *testing.T) {
	r, err := newValidatedKind().New(map[string]any{"numericality": "a"})
	require.NoError(t, err)

	assert.Nil(t, r.Errors(), "errors are only populated by Validate")

	assert.False(t, r.Validate())
	assert.NotEmpty(t, r.Errors().On("numericality"))

	r.Set("presence", "foo")
	r.Set("numericality", "1")
	r.Set("format", "abc")
	r.Set("inclusion", "foo")

	assert.True(t, r.Validate())
	assert.True(t, r.Errors().Empty())
	assert.NoError(t, r.Errors().Err())
}

func TestValidate_UsesDefaults(t *testing.T) {
	k := NewKind("Defaults").Attribute("status",
		Default("foo"),
		Validates(Presence(), Inclusion("foo", "bar")),
	)
	r, err := k.New(nil)
	require.NoError(t, err)

	assert.True(t, r.Validate())
}

func TestValidate_InheritedRules(t *testing.T) {
	parent := newValidatedKind()
	child := parent.Extend("Child").Attribute("extra", Validates(Presence()))

	r, err := child.New(map[string]any{
		"presence":     "x",
		"numericality": 1,
		"format":       "abc",
		"inclusion":    "bar",
	})
	require.NoError(t, err)

	assert.False(t, r.Validate())
	assert.Equal(t, []string{"extra"}, keys(r.Errors()))
}

func TestValidationRule_Name(t *testing.T) {
	assert.Equal(t, "presence", Presence().Name())
	assert.Equal(t, "numericality", Numericality().Name())
	assert.Equal(t, "format", Format(regexp.MustCompile(`x`)).Name())
	assert.Equal(t, "inclusion", Inclusion().Name())
}

func keys(e Errors) []string {
	var names []string
	for name := range e {
		names = append(names, name)
	}
	return names
}
