package browser

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
)

// fakeDialog implements playwright.Dialog for handler tests.
type fakeDialog struct {
	acceptErr error
	accepted  bool
	dismissed bool
}

func (d *fakeDialog) Accept(promptText ...string) error {
	if d.acceptErr != nil {
		return d.acceptErr
	}
	d.accepted = true
	return nil
}

func (d *fakeDialog) DefaultValue() string  { return "" }
func (d *fakeDialog) Message() string       { return "Are you sure?" }
func (d *fakeDialog) Page() playwright.Page { return nil }
func (d *fakeDialog) Type() string          { return "confirm" }
func (d *fakeDialog) Dismiss() error {
	d.dismissed = true
	return nil
}

func TestAcceptDialogAccepts(t *testing.T) {
	dialog := &fakeDialog{}

	acceptDialog(dialog)

	assert.True(t, dialog.accepted)
	assert.False(t, dialog.dismissed)
}

func TestAcceptDialogDismissesWhenAcceptFails(t *testing.T) {
	dialog := &fakeDialog{acceptErr: fmt.Errorf("beforeunload cannot be accepted")}

	acceptDialog(dialog)

	assert.False(t, dialog.accepted)
	assert.True(t, dialog.dismissed)
}
