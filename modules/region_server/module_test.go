package region_server

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cmdsync/internal/catalog"
	"github.com/vk/cmdsync/internal/registry"
	"github.com/vk/cmdsync/internal/region"
)

func TestModule_ChoicesFollowDirectory(t *testing.T) {
	reg := registry.New()
	(&Module{Directory: region.Default()}).Register(reg)

	d, err := catalog.NewLoader(reg).Load(context.Background(), Ref)
	require.NoError(t, err)
	assert.Equal(t, "region", d.Name())
	assert.JSONEq(t, `{
		"name": "region",
		"description": "Show the game server for a region",
		"options": [{
			"type": 3,
			"name": "region",
			"description": "Region identifier",
			"required": true,
			"choices": [
				{"name": "EU (127.0.0.1:7777)", "value": "EU"},
				{"name": "NAE (157.173.203.4:7777)", "value": "NAE"}
			]
		}]
	}`, string(d.Metadata()))
}

func TestModule_FailsWithoutUsableDirectory(t *testing.T) {
	empty, err := region.New()
	require.NoError(t, err)

	var many []region.Entry
	for i := 0; i <= MaxChoices; i++ {
		many = append(many, region.Entry{Region: fmt.Sprintf("R%02d", i), Address: "10.0.0.1", Port: 7777})
	}
	tooMany, err := region.New(many...)
	require.NoError(t, err)

	for name, dir := range map[string]*region.Directory{"nil": nil, "empty": empty, "too many": tooMany} {
		t.Run(name, func(t *testing.T) {
			reg := registry.New()
			(&Module{Directory: dir}).Register(reg)

			_, err := catalog.NewLoader(reg).Load(context.Background(), Ref)
			var ule *catalog.UnitLoadError
			require.ErrorAs(t, err, &ule)
			assert.Equal(t, Ref, ule.Ref)
		})
	}
}
