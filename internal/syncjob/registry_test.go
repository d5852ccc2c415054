package syncjob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryTaskTypes(t *testing.T) {
	registry := NewRegistry(&Syncer{})

	defs := registry.List()
	require.Len(t, defs, 10)

	types := make([]string, 0, len(defs))
	for _, def := range defs {
		types = append(types, def.Type)
	}
	assert.Equal(t, []string{
		"lhb",
		"lhb_institution",
		"institution_trading_statistics",
		"active_branch",
		"zt_pool",
		"zt_pool_down",
		"index",
		"stock_fund_flow",
		"fund_flow_concept",
		"capital",
	}, types)

	names := registry.Names()
	assert.Equal(t, "涨停池数据同步", names["zt_pool"])
	assert.Equal(t, "龙虎榜个股", names["lhb"])
}
