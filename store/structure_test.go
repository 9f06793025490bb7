package store

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/stretchr/testify/require"
)

func TestStructure(t *testing.T) {
	require.Equal(t, []Field{
		{Name: "proposal_id", Kind: "string"},
		{Name: "content", Kind: "object"},
		{Name: "status", Kind: "string"},
		{Name: "final_tally_result", Kind: "object"},
		{Name: "submit_time", Kind: "string"},
		{Name: "deposit_end_time", Kind: "string"},
		{Name: "total_deposit", Kind: "array"},
		{Name: "voting_start_time", Kind: "string"},
		{Name: "voting_end_time", Kind: "string"},
	}, Structure(&govv1beta1.Proposal{}))

	// The gov Vote keeps proto3 names even where its json tag differs.
	require.Equal(t, Field{Name: "proposal_id", Kind: "string"}, Structure(govv1beta1.Vote{})[0])

	require.Equal(t, []Field{
		{Name: "quorum", Kind: "string"},
		{Name: "threshold", Kind: "string"},
		{Name: "veto_threshold", Kind: "string"},
	}, Structure(&govv1beta1.TallyParams{}))

	require.Equal(t, []Field{
		{Name: "min_deposit", Kind: "array"},
		{Name: "max_deposit_period", Kind: "string"},
	}, Structure(&govv1beta1.DepositParams{}))

	require.Nil(t, Structure("not a struct"))
}

func TestStore_TypeStructure(t *testing.T) {
	s := newTestStore()
	s.RegisterStructures(&distrtypes.Params{}, &govv1beta1.TallyParams{}, &sdk.Coin{})

	fields, ok := s.TypeStructure("cosmos.base.v1beta1.Coin")
	require.True(t, ok)
	require.Equal(t, []Field{{Name: "denom", Kind: "string"}, {Name: "amount", Kind: "string"}}, fields)

	distrParams, ok := s.TypeStructure("cosmos.distribution.v1beta1.Params")
	require.True(t, ok)
	require.Equal(t, Field{Name: "community_tax", Kind: "string"}, distrParams[0])

	tallyParams, ok := s.TypeStructure("cosmos.gov.v1beta1.TallyParams")
	require.True(t, ok)
	require.Equal(t, Field{Name: "quorum", Kind: "string"}, tallyParams[0])

	_, ok = s.TypeStructure("Params")
	require.False(t, ok)
}
