package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParamLowerCases(t *testing.T) {
	p := NewParam("Account_ID", "ABC")
	assert.Equal(t, "account_id", p.Name)
	assert.Equal(t, "abc", p.Value)
	assert.Equal(t, "account_id=abc", p.String())
}

func TestExactParamKeepsValueCase(t *testing.T) {
	p := ExactParam("Access_Token", "AbC123")
	assert.Equal(t, "access_token", p.Name)
	assert.Equal(t, "AbC123", p.Value)
}

func TestTypedParams(t *testing.T) {
	tests := []struct {
		name  string
		param Param
		want  Param
	}{
		{"list", ListParam("fields", []string{"Nickname", "-statistics.clan"}), Param{"fields", "nickname,-statistics.clan"}},
		{"empty list", ListParam("fields", nil), Param{"fields", ""}},
		{"int list", IntListParam("account_id", []int64{1, 22, 333}), Param{"account_id", "1,22,333"}},
		{"bool true", BoolParam("extra", true), Param{"extra", "1"}},
		{"bool false", BoolParam("extra", false), Param{"extra", "0"}},
		{"int", IntParam("limit", 100), Param{"limit", "100"}},
		{"negative int", IntParam("offset", -5), Param{"offset", "-5"}},
		{"float", FloatParam("ratio", 0.25), Param{"ratio", "0.25"}},
		{"whole float", FloatParam("ratio", 3), Param{"ratio", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.param)
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "a=1&b=x+y&a=2", Encode([]Param{{"a", "1"}, {"b", "x y"}, {"a", "2"}}))
	assert.Equal(t, "fields=a%2Cb", Encode([]Param{ListParam("fields", []string{"a", "b"})}))
}

type listOptions struct {
	Search   string   `url:"search"`
	Type     string   `url:"type,omitempty"`
	Limit    int      `url:"limit,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

func TestStructParams(t *testing.T) {
	params, err := StructParams(listOptions{
		Search: "Tanker",
		Limit:  10,
		Fields: []string{"nickname", "account_id"},
	})
	require.NoError(t, err)

	assert.Equal(t, []Param{
		{"fields", "nickname,account_id"},
		{"limit", "10"},
		{"search", "tanker"},
	}, params)

	_, err = StructParams("not a struct")
	assert.Error(t, err)
}
