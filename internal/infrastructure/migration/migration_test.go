package migration

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"tavern/internal/infrastructure/persistence/models"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\);`)

// migrationColumns extracts the column names per table from the embedded
// goose scripts, up sections only.
func migrationColumns(t *testing.T) map[string][]string {
	t.Helper()

	entries, err := scripts.ReadDir(scriptsDir)
	require.NoError(t, err)

	tables := make(map[string][]string)
	for _, entry := range entries {
		raw, err := scripts.ReadFile(scriptsDir + "/" + entry.Name())
		require.NoError(t, err)

		ddl := string(raw)
		if i := strings.Index(ddl, "+goose Down"); i >= 0 {
			ddl = ddl[:i]
		}

		for _, m := range createTableRe.FindAllStringSubmatch(ddl, -1) {
			table, body := m[1], m[2]
			for _, line := range strings.Split(body, "\n") {
				fields := strings.Fields(strings.TrimSpace(line))
				if len(fields) == 0 {
					continue
				}
				switch fields[0] {
				case "PRIMARY", "UNIQUE", "KEY", "CONSTRAINT", "FOREIGN", "INDEX":
					continue
				}
				tables[table] = append(tables[table], fields[0])
			}
		}
	}
	return tables
}

// Repository tests build their schema with AutoMigrate, which derives
// columns from the models. A deployed database is built from these scripts
// instead, so the two must agree column for column.
func TestInitSchemaMatchesPersistenceModels(t *testing.T) {
	tables := migrationColumns(t)
	require.NotEmpty(t, tables)

	all := []interface{}{
		&models.UserModel{},
		&models.UserLimitsModel{},
		&models.CampaignModel{},
		&models.CampaignMemberModel{},
		&models.CharacterModel{},
		&models.InvitationModel{},
		&models.JoinRequestModel{},
		&models.FeedbackModel{},
	}

	cache := &sync.Map{}
	for _, model := range all {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		migrated, ok := tables[s.Table]
		require.True(t, ok, "table %s is missing from the init migration", s.Table)
		assert.ElementsMatch(t, s.DBNames, migrated,
			"column mismatch on %s between migration DDL and %T", s.Table, model)
	}
}
