package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/pluscodes/internal/core/domain"
)

// queryFloat parses a required float query parameter.
func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

// queryPoint parses the lat and lng query parameters.
func queryPoint(c *fiber.Ctx) (lat, lng float64, err error) {
	if lat, err = queryFloat(c, "lat"); err != nil {
		return 0, 0, err
	}
	if lng, err = queryFloat(c, "lng"); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// queryCode reads the code query parameter. An unescaped '+' arrives as a
// space, and codes never contain spaces, so it is put back.
func queryCode(c *fiber.Ctx) (string, error) {
	code := strings.TrimSpace(strings.ReplaceAll(c.Query("code"), " ", "+"))
	if code == "" {
		return "", fmt.Errorf("code query parameter is required")
	}
	if len(code) > 64 {
		return "", fmt.Errorf("code too long (max 64 characters)")
	}
	return code, nil
}

// EncodeHandler returns the code of a point.
// GET /v1/encode?lat=47.365590&lng=8.524997&length=10
func EncodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, lng, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		length := 0
		if raw := c.Query("length"); raw != "" {
			if length, err = strconv.Atoi(raw); err != nil {
				return errBadRequest(c, "length must be an integer")
			}
		}

		res, err := deps.Codes.Encode(c.UserContext(), domain.EncodeRequest{Lat: lat, Lng: lng, Length: length})
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(res)
	}
}

// BatchEncodeHandler encodes a JSON array of points.
// POST /v1/encode/batch
func BatchEncodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqs []domain.EncodeRequest
		if err := c.BodyParser(&reqs); err != nil {
			return errBadRequest(c, "body must be a JSON array of {lat, lng, length}")
		}

		items, err := deps.Codes.EncodeBatch(c.UserContext(), reqs)
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(items)
	}
}

// DecodeHandler returns the area of a full code.
// GET /v1/decode?code=8FVC9G8F+6X
func DecodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := queryCode(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		area, err := deps.Codes.Decode(c.UserContext(), code)
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(area)
	}
}

// ShortenHandler trims a full code relative to a reference point.
// GET /v1/shorten?code=8FVC9G8F+6X&lat=47.4&lng=8.6
func ShortenHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := queryCode(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lat, lng, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		res, err := deps.Codes.Shorten(c.UserContext(), code, lat, lng)
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(res)
	}
}

// RecoverHandler expands a short code around a reference point.
// GET /v1/recover?code=9G8F+6X&lat=47.4&lng=8.6
func RecoverHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := queryCode(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lat, lng, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		res, err := deps.Codes.Recover(c.UserContext(), code, lat, lng)
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(res)
	}
}

// ValidateHandler classifies a candidate code. Invalid codes are a normal
// answer, not an error.
// GET /v1/validate?code=9G8F+6X
func ValidateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := queryCode(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(deps.Codes.Validate(c.UserContext(), code))
	}
}
