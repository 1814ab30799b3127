package source

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJapanDevHTML = `<html><body>
<h2><a href="/companies/mercari">Mercari</a></h2>
<h2><a href="/companies/stripe">NEW! Stripe</a></h2>
<h2><a href="/companies/x">X</a></h2>
<h2><a href="/blog/hiring">Hiring in Japan</a></h2>
<h2><a href="/companies/mercari">Mercari</a></h2>
<h2>No link here</h2>
</body></html>`

func TestParseJapanDev(t *testing.T) {
	companies, err := ParseJapanDev(sampleJapanDevHTML, "https://japan-dev.com")
	require.NoError(t, err)
	require.Len(t, companies, 2)

	assert.Equal(t, "Mercari", companies[0].Name)
	assert.Equal(t, "https://japan-dev.com/companies/mercari", companies[0].URL)
	assert.Equal(t, "Tokyo", companies[0].Locator)

	// "NEW!" badge is stripped from the anchor text.
	assert.Equal(t, "Stripe", companies[1].Name)
}

func TestParseJapanDev_SkipsOneCharacterNames(t *testing.T) {
	companies, err := ParseJapanDev(`<h2><a href="/companies/a">A</a></h2>`, "https://japan-dev.com")
	require.NoError(t, err)
	assert.Empty(t, companies)
}

func TestFetchJapanDev_FetchFailureYieldsEmptyList(t *testing.T) {
	client := &stubClient{errs: map[string]error{"https://japan-dev.com/companies/tags/global-offices": eris.New("boom")}}

	companies := FetchJapanDev(context.Background(), client, "https://japan-dev.com/companies/tags/global-offices")
	assert.Empty(t, companies)
}

func TestFetchJapanDev_AbsolutizesProfileURLs(t *testing.T) {
	client := &stubClient{bodies: map[string]string{"https://japan-dev.com/companies/tags/global-offices": sampleJapanDevHTML}}

	companies := FetchJapanDev(context.Background(), client, "https://japan-dev.com/companies/tags/global-offices")
	require.NotEmpty(t, companies)
	assert.Equal(t, "https://japan-dev.com/companies/mercari", companies[0].URL)
}

func TestBaseOf(t *testing.T) {
	assert.Equal(t, "https://japan-dev.com", baseOf("https://japan-dev.com/companies/tags/global-offices"))
	assert.Equal(t, "https://japan-dev.com", baseOf("https://japan-dev.com"))
	assert.Equal(t, "", baseOf("not a url"))
}
