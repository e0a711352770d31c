package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate decodifica el cuerpo JSON y valida las etiquetas
// `validate` del DTO. El handler decide la respuesta.
func parseAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("cuerpo inválido")
	}
	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			f := ve[0]
			return fmt.Errorf("campo %s inválido (%s)", f.Field(), f.Tag())
		}
		return err
	}
	return nil
}
