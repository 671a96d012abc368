package headless

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/testfixtures"
)

const validFile = `
email: jane@acme.com
password: password123
confirmPassword: password123
firstName: Jane
lastName: Doe
jobTitle: CTO
userPhone: "+1 555 0100"
companyName: Acme
industry: Technology
companySize: 51-200
country: United States
foundedYear: "2015"
businessType: Corporation
timezone: America/New_York
currency: USD
invites:
  - email: bob@acme.com
    role: manager
    name: Bob
`

func immediate(_ time.Duration, f func()) { f() }

func TestDecode(t *testing.T) {
	a, err := Decode(strings.NewReader(validFile))
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.com", a.Email)
	assert.Equal(t, "51-200", a.CompanySize)
	require.Len(t, a.Invites, 1)
	assert.Equal(t, signup.RoleManager, a.Invites[0].Role, "role is normalized")
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("emial: typo@acme.com\n"))
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	a, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "", a.Email)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.yml")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o644))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", a.CompanyName)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestValidate_GroupsByStep(t *testing.T) {
	a := testfixtures.CompleteAggregate()
	a.Email = "nope"
	a.Industry = ""
	a.Invites = []signup.Invite{{Email: "bad", Role: "Owner"}}

	problems := Validate(a)
	assert.Equal(t, []string{"Please enter a valid email address"}, problems[signup.StepCredentials])
	assert.NotContains(t, problems, signup.StepProfile)
	assert.Equal(t, []string{"Please select an industry"}, problems[signup.StepCompany])
	assert.Equal(t, []string{
		"invite 1: Please enter a valid email address",
		"invite 1: Please select a role",
	}, problems[signup.StepInvites])
}

func TestRun_Success(t *testing.T) {
	a, err := Decode(strings.NewReader(validFile))
	require.NoError(t, err)

	accounts := testfixtures.NewMockAccounts()
	queue := testfixtures.NewMockInviteQueue()
	var out bytes.Buffer

	outcome, err := Run(context.Background(), a, Options{
		Accounts:  accounts,
		Invites:   queue,
		AfterFunc: immediate,
		Out:       &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "/", outcome.Route)
	assert.Equal(t, 1, outcome.InvitesPending)
	assert.Equal(t, 1, accounts.Calls())
	assert.Equal(t, 1, queue.Queued())
	assert.Contains(t, out.String(), "Account created: user user-1, company company-1")
	assert.Contains(t, out.String(), "1 team invite(s) held for sending")
}

func TestRun_ValidationFailureSkipsAPI(t *testing.T) {
	accounts := testfixtures.NewMockAccounts()
	var out bytes.Buffer

	_, err := Run(context.Background(), &signup.Aggregate{}, Options{Accounts: accounts, Out: &out})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Zero(t, accounts.Calls())
	assert.Contains(t, out.String(), "Step 1 (Account):")
	assert.Contains(t, out.String(), "  - Email is required")
	assert.Contains(t, out.String(), "Step 3 (Company):")
}

func TestRun_APIFailure(t *testing.T) {
	accounts := testfixtures.NewMockAccounts()
	accounts.SetErr(errors.New("Network down"))

	_, err := Run(context.Background(), testfixtures.CompleteAggregate(), Options{Accounts: accounts})
	require.EqualError(t, err, "account creation failed: Network down")
}

func TestRun_ContextCancelledBeforeRedirect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	never := func(time.Duration, func()) { cancel() }

	outcome, err := Run(ctx, testfixtures.CompleteAggregate(), Options{
		Accounts:  testfixtures.NewMockAccounts(),
		AfterFunc: never,
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, outcome, "the account was still created")
}
