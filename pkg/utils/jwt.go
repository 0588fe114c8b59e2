package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(userID int64, userName string, externalID string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["externalID"] = externalID
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

func ExtractTokenUser(c echo.Context) (uint64, string, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, "", ""
	}

	if user.Valid {
		claims := user.Claims.(jwt.MapClaims)
		userID, _ := claims["userID"].(float64)
		name, _ := claims["name"].(string)
		externalID, _ := claims["externalID"].(string)
		return uint64(userID), name, externalID
	}
	return 0, "", ""
}
