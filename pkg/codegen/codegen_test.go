package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePartnerCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^JLX\d{6}$`)

	for i := 0; i < 200; i++ {
		code := GeneratePartnerCode()
		require.Regexp(t, re, code)

		n, err := strconv.Atoi(code[3:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	re := regexp.MustCompile(`^ORD-\d{4}-\d{4}$`)
	year := fmt.Sprintf("%d", time.Now().Year())

	for i := 0; i < 200; i++ {
		num := GenerateOrderNumber()
		require.Regexp(t, re, num)
		assert.Equal(t, year, num[4:8], "order number should carry the current year")

		n, err := strconv.Atoi(num[9:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}
