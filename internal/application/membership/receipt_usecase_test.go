package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

func TestReceiptDownload(t *testing.T) {
	subs := newMemSubs(
		activeSub("0123456789abcdef", 1, fixedNow, fixedNow.AddDate(0, 0, 30)),
		&entity.Subscription{ID: "pendiente", UserID: 1, Status: entity.SubStatusPending},
	)
	gen := &fakeReceipts{}
	uc := NewReceiptUseCase(subs, newMemUsers(member(1), member(2)), gen, "GymFlow")

	pdf, name, err := uc.Download(context.Background(), 1, false, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "recibo_01234567.pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.True(t, gen.called)

	_, _, err = uc.Download(context.Background(), 2, false, "0123456789abcdef")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = uc.Download(context.Background(), 2, true, "0123456789abcdef")
	assert.NoError(t, err, "un admin puede descargar cualquier recibo")

	_, _, err = uc.Download(context.Background(), 1, false, "pendiente")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Download(context.Background(), 1, false, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
