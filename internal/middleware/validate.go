package middleware

import (
    "errors"
    "net/http"

    "github.com/bilgisen/haberci/internal/logger"
    "github.com/go-playground/validator/v10"
    "github.com/gofiber/fiber/v2"
)

// ValidatedKey is the Locals key holding the parsed request body
const ValidatedKey = "validated"

var validate = validator.New()

// ValidateBody parses the JSON body into a fresh T, validates it and
// stores the *T under ValidatedKey. An empty body leaves T at its zero
// value before validation.
func ValidateBody[T any]() fiber.Handler {
    return func(c *fiber.Ctx) error {
        req := new(T)

        if len(c.Body()) > 0 {
            if err := c.BodyParser(req); err != nil {
                return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
                    "error": "Invalid request body",
                    "msg":   err.Error(),
                })
            }
        }

        if err := validate.Struct(req); err != nil {
            var verrs validator.ValidationErrors
            if !errors.As(err, &verrs) {
                return err
            }
            fields := make(map[string]string)
            for _, fe := range verrs {
                fields[fe.Field()] = fe.Tag()
            }

            return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
                "error":  "Validation failed",
                "fields": fields,
            })
        }

        c.Locals(ValidatedKey, req)
        return c.Next()
    }
}

// Validated returns the body stored by ValidateBody
func Validated[T any](c *fiber.Ctx) *T {
    req, _ := c.Locals(ValidatedKey).(*T)
    return req
}

// ErrorHandler is the application-wide fiber error handler
func ErrorHandler(c *fiber.Ctx, err error) error {
    code := fiber.StatusInternalServerError

    var e *fiber.Error
    if errors.As(err, &e) {
        code = e.Code
    }

    logger.With("http").Error().
        Err(err).
        Str("method", c.Method()).
        Str("path", c.Path()).
        Int("status", code).
        Msg("HTTP error")

    return c.Status(code).JSON(fiber.Map{
        "error": http.StatusText(code),
    })
}
