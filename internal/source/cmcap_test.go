package source

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokyomaps/companymaps/internal/model"
)

const sampleCSV = `Rank,Name,Symbol,marketcap,price (USD),country
1,Toyota,7203.T,291354000000,200.1,Japan
2,Sony,6758.T,112045000000,90.5,Japan
3,Keyence,6861.T,98012000000,450.2,Japan
2,Sony Duplicate,6758.T,1,1,Japan
,No Rank Co,XXXX,5,5,Japan
4,,YYYY,6,6,Japan
`

func TestParseMarketCapCSV(t *testing.T) {
	rows, err := ParseMarketCapCSV(sampleCSV)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Toyota", rows[0].Name)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "7203.T", rows[0].Ticker)
	assert.Equal(t, "$291.35 B", rows[0].MarketCap)
	assert.Equal(t, model.SourceMarketCap, rows[0].Source)

	// Duplicate rank keeps the first occurrence.
	assert.Equal(t, "Sony", rows[1].Name)
	assert.Equal(t, "Keyence", rows[2].Name)
}

func TestParseMarketCapCSV_BOMAndTickerHeader(t *testing.T) {
	csvText := "\ufeffrank,name,ticker,market capitalization\n7,Nintendo,7974.T,85000000000\n"
	rows, err := ParseMarketCapCSV(csvText)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nintendo", rows[0].Name)
	assert.Equal(t, "7974.T", rows[0].Ticker)
	assert.Equal(t, "$85.00 B", rows[0].MarketCap)
}

func TestParseMarketCapCSV_NoRankHeader(t *testing.T) {
	rows, err := ParseMarketCapCSV("a,b,c\n1,2,3\n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseMarketCapCSV_Empty(t *testing.T) {
	rows, err := ParseMarketCapCSV("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "$1.23 T", FormatMarketCap("1230000000000"))
	assert.Equal(t, "$291.35 B", FormatMarketCap("291,354,000,000"))
	assert.Equal(t, "$5.00 M", FormatMarketCap("5000000"))
	assert.Equal(t, "$950", FormatMarketCap("950"))
	assert.Equal(t, "$1.2T", FormatMarketCap("$1.2T"))
	assert.Equal(t, "", FormatMarketCap("n/a"))
	assert.Equal(t, "", FormatMarketCap(""))
}

// stubClient serves canned bodies per URL.
type stubClient struct {
	bodies map[string]string
	errs   map[string]error
}

func (s *stubClient) GetString(_ context.Context, url string) (string, error) {
	if err, ok := s.errs[url]; ok {
		return "", err
	}
	if body, ok := s.bodies[url]; ok {
		return body, nil
	}
	return "", eris.Errorf("stub: no body for %s", url)
}

func TestFetchJapanTop200_SkipsBlockedURL(t *testing.T) {
	client := &stubClient{bodies: map[string]string{
		"https://blocked.example/csv": "<html><body>Just a moment...</body></html>",
		"https://ok.example/csv":      sampleCSV,
	}}

	rows, err := FetchJapanTop200(context.Background(), client,
		[]string{"https://blocked.example/csv", "https://ok.example/csv"}, 200)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFetchJapanTop200_CapsAtMaxRank(t *testing.T) {
	client := &stubClient{bodies: map[string]string{"https://ok.example/csv": sampleCSV}}

	rows, err := FetchJapanTop200(context.Background(), client, []string{"https://ok.example/csv"}, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sony", rows[1].Name)
}

func TestFetchJapanTop200_AllSourcesFail(t *testing.T) {
	client := &stubClient{errs: map[string]error{"https://down.example/csv": eris.New("boom")}}

	_, err := FetchJapanTop200(context.Background(), client, []string{"https://down.example/csv"}, 200)
	assert.Error(t, err)
}
