package utils_test

import (
	"testing"

	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSQLBuilder(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "empty",
			builder:  utils.NewSQLBuilder,
			expected: "",
		},
		{
			name: "ALTER TABLE MODIFY",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().AlterTable("T").Modify("C").Raw("BIGINT").Raw("AUTO_INCREMENT")
			},
			expected: "ALTER TABLE T MODIFY C BIGINT AUTO_INCREMENT",
		},
		{
			name: "ALTER COLUMN SET DEFAULT",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().AlterTable("public.users").AlterColumn("status").SetDefault("'active'")
			},
			expected: "ALTER TABLE public.users ALTER COLUMN status SET DEFAULT 'active'",
		},
		{
			name: "ALTER COLUMN DROP DEFAULT",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().AlterTable("users").AlterColumn("status").DropDefault()
			},
			expected: "ALTER TABLE users ALTER COLUMN status DROP DEFAULT",
		},
		{
			name: "CREATE SEQUENCE",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("SEQUENCE").Name("seq").Raw("START WITH 5")
			},
			expected: "CREATE SEQUENCE seq START WITH 5",
		},
		{
			name: "UPDATE",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Update("DATABASECHANGELOG").Set("MD5SUM = 'x'", "A = 1").Where("ID = '1'")
			},
			expected: "UPDATE DATABASECHANGELOG SET MD5SUM = 'x', A = 1 WHERE ID = '1'",
		},
		{
			name: "empty optional clauses are skipped",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Update("t").Set().Where("").Name("").Raw("")
			},
			expected: "UPDATE t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.builder().String())
		})
	}
}
