package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys are the English texts; Spanish translations are registered here.
var spanish = map[string]string{
	// Generic
	"Done":                 "Listo",
	"Something went wrong": "Algo salió mal",
	"An unexpected error occurred. Please try again.": "Ocurrió un error inesperado. Inténtalo de nuevo.",
	"Log in required":                             "Inicia sesión",
	"You must log in to request enrollment.":      "Debes iniciar sesión para solicitar inscripción.",
	"You must log in to continue.":                "Debes iniciar sesión para continuar.",
	"Email not verified":                          "Correo no verificado",
	"Verify your email before continuing.":        "Verifica tu correo electrónico antes de continuar.",
	"Not found":                                   "No encontrado",
	"The requested resource does not exist.":      "El recurso solicitado no existe.",
	"Please wait":                                 "Espera un momento",
	"This operation is already in progress.":      "Esta operación ya está en curso.",
	"Not allowed":                                 "No permitido",
	"You do not have permission for this action.": "No tienes permiso para realizar esta acción.",
	"Unknown status":                              "Estado desconocido",

	// Enrollment
	"Request sent":                            "Solicitud enviada",
	"Your enrollment request was sent.":       "Tu solicitud de inscripción fue enviada.",
	"Could not send the enrollment request":   "No se pudo enviar la solicitud de inscripción",
	"Request cancelled":                       "Solicitud cancelada",
	"Your enrollment request was cancelled.":  "Tu solicitud de inscripción fue cancelada.",
	"Could not cancel the enrollment request": "No se pudo cancelar la solicitud de inscripción",
	"Unenrolled":                              "Desinscrito",
	"You left the project.":                   "Abandonaste el proyecto.",
	"Could not leave the project":             "No se pudo abandonar el proyecto",
	"Request approved":                        "Solicitud aprobada",
	"The user is now a project member.":       "El usuario ahora es miembro del proyecto.",
	"Could not approve the request":           "No se pudo aprobar la solicitud",
	"Request rejected":                        "Solicitud rechazada",
	"The enrollment request was rejected.":    "La solicitud de inscripción fue rechazada.",
	"Could not reject the request":            "No se pudo rechazar la solicitud",
	"Membership revoked":                      "Membresía revocada",
	"The user was removed from the project.":  "El usuario fue expulsado del proyecto.",
	"Could not revoke the membership":         "No se pudo revocar la membresía",
	"Acknowledged":                            "Enterado",
	"The removal notice was dismissed.":       "El aviso de expulsión fue descartado.",
	"Could not dismiss the removal notice":    "No se pudo descartar el aviso de expulsión",
	"Invitation accepted":                     "Invitación aceptada",
	"You are now a project member.":           "Ahora eres miembro del proyecto.",
	"Could not accept the invitation":         "No se pudo aceptar la invitación",
	"Invitation declined":                     "Invitación rechazada",
	"You declined the invitation.":            "Rechazaste la invitación.",
	"Could not decline the invitation":        "No se pudo rechazar la invitación",
	"Invitation cancelled":                    "Invitación cancelada",
	"The invitation was withdrawn.":           "La invitación fue retirada.",
	"Could not cancel the invitation":         "No se pudo cancelar la invitación",
	"Invitation sent":                         "Invitación enviada",
	"The user was invited to the project.":    "El usuario fue invitado al proyecto.",
	"Could not send the invitation":           "No se pudo enviar la invitación",

	// Enrollment buttons and badges
	"Request enrollment": "Solicitar inscripción",
	"Cancel request":     "Cancelar solicitud",
	"Leave project":      "Abandonar proyecto",
	"Approve":            "Aprobar",
	"Reject":             "Rechazar",
	"Revoke membership":  "Expulsar",
	"Dismiss":            "Descartar",
	"Accept invitation":  "Aceptar invitación",
	"Decline invitation": "Rechazar invitación",
	"Cancel invitation":  "Cancelar invitación",
	"Invite":             "Invitar",
	"View message":       "Ver mensaje",
	"View response":      "Ver respuesta",
	"View rejection":     "Ver motivo del rechazo",
	"View removal":       "Ver motivo de la expulsión",
	"View details":       "Ver detalles",
	"Not enrolled":       "No inscrito",
	"Invited":            "Invitado",
	"Pending":            "Pendiente",
	"Member":             "Miembro",
	"Rejected":           "Rechazado",
	"Declined":           "Declinado",
	"Removed":            "Expulsado",

	// Projects and reference data
	"Saved":                        "Guardado",
	"%s was saved.":                "%s se guardó correctamente.",
	"Could not save %s":            "No se pudo guardar %s",
	"Deleted":                      "Eliminado",
	"%s was deleted.":              "%s se eliminó correctamente.",
	"Could not delete %s":          "No se pudo eliminar %s",
	"Favorites updated":            "Favoritos actualizados",
	"Your favorites were updated.": "Tus favoritos se actualizaron.",
	"Could not update favorites":   "No se pudieron actualizar los favoritos",
	"Could not load %s":            "No se pudo cargar %s",
	"the project":                  "el proyecto",
	"the institution":              "la institución",
	"the facility":                 "la facultad",
	"the research department":      "el departamento de investigación",
	"the interest":                 "el interés",
	"the users":                    "los usuarios",
	"the projects":                 "los proyectos",

	// Auth
	"Welcome":                                "Bienvenido",
	"You are now logged in.":                 "Has iniciado sesión.",
	"Could not log in":                       "No se pudo iniciar sesión",
	"Account created":                        "Cuenta creada",
	"Check your inbox to verify your email.": "Revisa tu bandeja de entrada para verificar tu correo.",
	"Could not create the account":           "No se pudo crear la cuenta",
	"Logged out":                             "Sesión cerrada",
	"See you soon.":                          "Hasta pronto.",
	"Email sent":                             "Correo enviado",
	"If the account exists you will receive a link.": "Si la cuenta existe recibirás un enlace.",
	"Could not send the recovery email":              "No se pudo enviar el correo de recuperación",
	"Password updated":                               "Contraseña actualizada",
	"You can log in with your new password.":         "Ya puedes iniciar sesión con tu nueva contraseña.",
	"Could not reset the password":                   "No se pudo restablecer la contraseña",
	"Email verified":                                 "Correo verificado",
	"Your email address was verified.":               "Tu correo electrónico fue verificado.",
	"Could not verify the email":                     "No se pudo verificar el correo",
	"Report sent":                                    "Reporte enviado",
	"Thank you, the team will look into it.":         "Gracias, el equipo lo revisará.",
	"Could not send the report":                      "No se pudo enviar el reporte",

	// Form validation
	"Passwords do not match":                      "Las contraseñas no coinciden",
	"Email and password are required":             "El correo y la contraseña son obligatorios",
	"The name is required":                        "El nombre es obligatorio",
	"Please describe what happened":               "Describe lo que ocurrió",
	"The user id is invalid":                      "El identificador de usuario no es válido",
	"The start date must use yyyy-mm-dd":          "La fecha de inicio debe tener el formato aaaa-mm-dd",
	"The end date must be after the start":        "La fecha de fin debe ser posterior a la de inicio",
	"The selected institution is invalid":         "La institución seleccionada no es válida",
	"The selected facility is invalid":            "La facultad seleccionada no es válida",
	"The selected research department is invalid": "El departamento de investigación seleccionado no es válido",
	"The selected interests are invalid":          "Los intereses seleccionados no son válidos",

	// Pages
	"%d months and %d days":         "%d meses y %d días",
	"%d projects":                   "%d proyectos",
	"Abbreviation":                  "Abreviatura",
	"Add":                           "Agregar",
	"Administration":                "Administración",
	"All departments":               "Todos los departamentos",
	"All facilities":                "Todas las facultades",
	"All institutions":              "Todas las instituciones",
	"Back to projects":              "Volver a los proyectos",
	"Cancel":                        "Cancelar",
	"Closed":                        "Cerrado",
	"Color scheme":                  "Esquema de color",
	"Confirm password":              "Confirmar contraseña",
	"Create account":                "Crear cuenta",
	"Delete this project?":          "¿Eliminar este proyecto?",
	"Delete":                        "Eliminar",
	"Description":                   "Descripción",
	"Edit project":                  "Editar proyecto",
	"Edit":                          "Editar",
	"Email":                         "Correo electrónico",
	"End date":                      "Fecha de fin",
	"Facilities":                    "Facultades",
	"Facility":                      "Facultad",
	"Favorites":                     "Favoritos",
	"Forgot your password?":         "¿Olvidaste tu contraseña?",
	"From":                          "Desde",
	"Institution":                   "Institución",
	"Institutions":                  "Instituciones",
	"Interests":                     "Intereses",
	"Last name":                     "Apellido",
	"Log in":                        "Iniciar sesión",
	"Log out":                       "Cerrar sesión",
	"Members":                       "Miembros",
	"Menu":                          "Menú",
	"Message":                       "Mensaje",
	"My enrollment":                 "Mi inscripción",
	"My profile":                    "Mi perfil",
	"My projects":                   "Mis proyectos",
	"Name":                          "Nombre",
	"New password":                  "Nueva contraseña",
	"New project":                   "Nuevo proyecto",
	"Newest":                        "Más recientes",
	"Next":                          "Siguiente",
	"No pending requests.":          "No hay solicitudes pendientes.",
	"No projects match the search.": "Ningún proyecto coincide con la búsqueda.",
	"Nothing here yet.":             "Aún no hay nada aquí.",
	"Password":                      "Contraseña",
	"Previous":                      "Anterior",
	"Recover password":              "Recuperar contraseña",
	"Reference":                     "Referencia",
	"Relevance":                     "Relevancia",
	"Report a problem":              "Reportar un problema",
	"Requests and invitations":      "Solicitudes e invitaciones",
	"Research department":           "Departamento de investigación",
	"Research departments":          "Departamentos de investigación",
	"Research projects":             "Proyectos de investigación",
	"Role":                          "Rol",
	"Save":                          "Guardar",
	"Search":                        "Buscar",
	"Send link":                     "Enviar enlace",
	"Send":                          "Enviar",
	"Start date":                    "Fecha de inicio",
	"To":                            "Hasta",
	"Try again":                     "Reintentar",
	"User id":                       "ID de usuario",
	"Users":                         "Usuarios",
	"Verified":                      "Verificado",
	"Website":                       "Sitio web",
	"What happened?":                "¿Qué ocurrió?",
	"LEADER":                        "Líder",
	"ADMIN":                         "Administrador",
	"MEMBER":                        "Miembro",
	"USER":                          "Usuario",
}

// Supported lists the catalog languages, default first.
var Supported = []language.Tag{language.Spanish, language.English}

func init() {
	for key, msg := range spanish {
		if err := message.SetString(language.Spanish, key, msg); err != nil {
			panic(err)
		}
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
}
