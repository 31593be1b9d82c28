package notify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"investiga-web/internal/domain"
)

type validationErr struct{ msgs []string }

func (e validationErr) Error() string          { return "validation" }
func (e validationErr) UserMessages() []string { return e.msgs }

func TestLocalizer_Success(t *testing.T) {
	es := For(language.Spanish)
	n := es.Success(OpEnrollRequest)
	assert.Equal(t, domain.NoticeSuccess, n.Kind)
	assert.Equal(t, "Solicitud enviada", n.Title)
	assert.Equal(t, "Tu solicitud de inscripción fue enviada.", n.Message)

	en := For(language.English)
	assert.Equal(t, "Request sent", en.Success(OpEnrollRequest).Title)
}

func TestLocalizer_Failure(t *testing.T) {
	es := For(language.Spanish)

	t.Run("Validation messages are shown verbatim", func(t *testing.T) {
		err := fmt.Errorf("failed to approve: %w", validationErr{msgs: []string{"El proyecto está lleno", "Intenta luego"}})
		n := es.Failure(OpApprove, err)
		assert.Equal(t, domain.NoticeError, n.Kind)
		assert.Equal(t, "No se pudo aprobar la solicitud", n.Title)
		assert.Equal(t, "El proyecto está lleno. Intenta luego", n.Message)
	})

	t.Run("Sentinels", func(t *testing.T) {
		assert.Equal(t, "Debes iniciar sesión para continuar.", es.Failure(OpFavorite, domain.ErrUnauthenticated).Message)
		assert.Equal(t, "Esta operación ya está en curso.", es.Failure(OpApprove, domain.ErrInFlight).Message)
		assert.Equal(t, "El recurso solicitado no existe.", es.Failure(OpApprove, fmt.Errorf("x: %w", domain.ErrNotFound)).Message)
	})

	t.Run("Unexpected", func(t *testing.T) {
		n := es.Failure(OpReject, errors.New("dial tcp: refused"))
		assert.Equal(t, "Ocurrió un error inesperado. Inténtalo de nuevo.", n.Message)
	})
}

func TestLocalizer_Entities(t *testing.T) {
	es := For(language.Spanish)
	assert.Equal(t, "la institución se guardó correctamente.", es.Saved(EntityInstitution).Message)
	assert.Equal(t, "No se pudo eliminar el proyecto", es.DeleteFailed(EntityProject, errors.New("x")).Title)
}

func TestLocalizer_LoginRequired(t *testing.T) {
	n := For(language.Spanish).LoginRequired()
	assert.Equal(t, domain.NoticeWarning, n.Kind)
	assert.Equal(t, "Debes iniciar sesión para solicitar inscripción.", n.Message)
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, language.English, FromAcceptLanguage("en-US,en;q=0.9", language.Spanish).Tag())
	assert.Equal(t, language.Spanish, FromAcceptLanguage("es-MX,es;q=0.9", language.English).Tag())
	assert.Equal(t, language.Spanish, FromAcceptLanguage("", language.Spanish).Tag())
	assert.Equal(t, language.Spanish, FromAcceptLanguage("%%%", language.Spanish).Tag())
}

func TestLocalizer_Denied(t *testing.T) {
	es := For(language.Spanish)

	n := es.Denied(domain.ErrUnverifiedEmail)
	assert.Equal(t, domain.NoticeWarning, n.Kind)
	assert.Equal(t, "Correo no verificado", n.Title)
	assert.Equal(t, "Verifica tu correo electrónico antes de continuar.", n.Message)

	assert.Equal(t, "Inicia sesión", es.Denied(domain.ErrUnauthenticated).Title)
	assert.Equal(t, "No permitido", es.Denied(domain.ErrForbidden).Title)
}

func TestLocalizer_Invalid(t *testing.T) {
	n := For(language.Spanish).Invalid(OpRegister, "Passwords do not match")
	assert.Equal(t, domain.NoticeError, n.Kind)
	assert.Equal(t, "No se pudo crear la cuenta", n.Title)
	assert.Equal(t, "Las contraseñas no coinciden", n.Message)
}

func TestLocalizer_SaveInvalid(t *testing.T) {
	n := For(language.Spanish).SaveInvalid(EntityFacility, "The name is required")
	assert.Equal(t, "No se pudo guardar la facultad", n.Title)
	assert.Equal(t, "El nombre es obligatorio", n.Message)
}
