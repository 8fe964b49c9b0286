package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los detalles usan el nombre JSON del campo, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica el JSON del cuerpo y valida los tags. Si falla ya escribió la respuesta 400.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	return validateStruct(c, out)
}

// parseQuery igual que parseBody para parámetros de consulta.
func parseQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	return validateStruct(c, out)
}

func validateStruct(c *fiber.Ctx, out any) (bool, error) {
	err := validate.Struct(out)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: formatValidationErrors(verrs),
		})
	}
	return false, badRequest(c, "VALIDATION", err.Error())
}

func formatValidationErrors(errs validator.ValidationErrors) []dto.ValidationDetail {
	details := make([]dto.ValidationDetail, 0, len(errs))
	for _, fe := range errs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("'%s' es requerido", fe.Field())
		case "email":
			msg = fmt.Sprintf("'%s' debe ser un email válido", fe.Field())
		case "min":
			msg = fmt.Sprintf("'%s' debe ser al menos %s", fe.Field(), fe.Param())
		case "max":
			msg = fmt.Sprintf("'%s' no debe superar %s", fe.Field(), fe.Param())
		case "oneof":
			msg = fmt.Sprintf("'%s' debe ser uno de [%s]", fe.Field(), fe.Param())
		default:
			msg = fmt.Sprintf("'%s' falló la validación '%s'", fe.Field(), fe.Tag())
		}
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: msg})
	}
	return details
}
