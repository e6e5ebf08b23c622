package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	t.Run("defaults", func(t *testing.T) {
		// when
		config, err := LoadConfig("")
		require.NoError(t, err)

		// then
		assert.Equal(orchestration.DefaultIdentityId, config.Identity.Id)
		assert.Equal(orchestration.DefaultIdentityName, config.Identity.Name)
		assert.Equal("nats://127.0.0.1:4222", config.Nats.Url)
		assert.Equal("PROGRESSION", config.Nats.StreamName)
		assert.Equal("127.0.0.1:7233", config.Temporal.Target)
		assert.Equal("progression", config.Temporal.TaskQueue)
		assert.Equal("127.0.0.1:8080", config.Http.BindAddress)
		assert.Empty(config.Database.Url)
		assert.Empty(config.Features)
	})

	t.Run("config file", func(t *testing.T) {
		// given
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		configYaml := `
identity:
  id: system-test
  name: Test Orchestration

nats:
  url: nats://nats.example.com:4222

features:
  public.progression.hearing-resulted: true
  public.progression.hearing-listed: false

refdata:
  holidays:
    - 2024-12-25
    - 2024-12-26
  task_types:
    - name: reviewTransfer
      displayname: Review transfer
      workqueue: queue-1
      duedateexpression: P2D!
`
		require.NoError(t, os.WriteFile(configPath, []byte(configYaml), 0o600))

		// when
		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		// then
		assert.Equal("system-test", config.Identity.Id)
		assert.Equal("nats://nats.example.com:4222", config.Nats.Url)

		assert.True(config.Features["public.progression.hearing-resulted"])
		assert.False(config.Features["public.progression.hearing-listed"])

		assert.Len(config.RefData.Holidays, 2)
		require.Len(t, config.RefData.TaskTypes, 1)
		assert.Equal("reviewTransfer", config.RefData.TaskTypes[0].Name)
		assert.Equal("P2D!", config.RefData.TaskTypes[0].DueDateExpression)
	})

	t.Run("invalid holiday date", func(t *testing.T) {
		// given
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		configYaml := `
refdata:
  holidays:
    - 25.12.2024
`
		require.NoError(t, os.WriteFile(configPath, []byte(configYaml), 0o600))

		// when
		_, err := LoadConfig(configPath)

		// then
		assert.Error(err)
	})

	t.Run("task type without name", func(t *testing.T) {
		// given
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		configYaml := `
refdata:
  task_types:
    - workqueue: queue-1
`
		require.NoError(t, os.WriteFile(configPath, []byte(configYaml), 0o600))

		// when
		_, err := LoadConfig(configPath)

		// then
		assert.Error(err)
	})
}
