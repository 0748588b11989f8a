// Package api exposes the rc5 engine over HTTP. Every request carries its
// own key; nothing is kept between requests and key material is never
// logged.
package api

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"rc5-go/pkg/config"
	"rc5-go/pkg/log"
	"rc5-go/pkg/rc5"
	"rc5-go/pkg/vectors"
)

// CryptRequest is the body of /encrypt and /decrypt. Key and Data are hex.
// Params defaults to the server's configured parameterization.
type CryptRequest struct {
	Params string `json:"params"`
	Key    string `json:"key"`
	Data   string `json:"data"`
}

type CryptResponse struct {
	Params string `json:"params"`
	Data   string `json:"data"`
}

type ParamsResponse struct {
	Default    string `json:"default"`
	WordSizes  []int  `json:"word_sizes"`
	MaxRounds  int    `json:"max_rounds"`
	MaxKeySize int    `json:"max_key_size"`
}

type SelfTestResponse struct {
	Passed  bool             `json:"passed"`
	Results []vectors.Result `json:"results"`
}

type Api struct {
	Echo     *echo.Echo
	defaults rc5.Params
}

func NewApi(defaults rc5.Params) *Api {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	a := &Api{Echo: e, defaults: defaults}
	e.POST("/encrypt", a.Encrypt)
	e.POST("/decrypt", a.Decrypt)
	e.GET("/params", a.GetParams)
	e.GET("/selftest", a.SelfTest)
	return a
}

// Run serves on addr until ctx is cancelled.
func (a *Api) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("api listening")
		errc <- a.Echo.Start(addr)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("api shutting down")
		return a.Echo.Shutdown(context.Background())
	}
}

func (a *Api) Encrypt(c echo.Context) error {
	return a.crypt(c, "encrypt", rc5.Session.Encrypt)
}

func (a *Api) Decrypt(c echo.Context) error {
	return a.crypt(c, "decrypt", rc5.Session.Decrypt)
}

func (a *Api) crypt(c echo.Context, op string, fn func(rc5.Session, []byte) ([]byte, error)) error {
	var req CryptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p := a.defaults
	if strings.TrimSpace(req.Params) != "" {
		var err error
		if p, err = rc5.ParseParams(req.Params); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	key, err := config.DecodeHex(req.Key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "key: "+err.Error())
	}
	data, err := config.DecodeHex(req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data: "+err.Error())
	}
	s, err := rc5.New(p, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := fn(s, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	log.Info().Str("op", op).Str("params", p.String()).Int("bytes", len(data)).Msg("api request")
	return c.JSON(http.StatusOK, CryptResponse{Params: p.String(), Data: strings.ToUpper(hex.EncodeToString(out))})
}

func (a *Api) GetParams(c echo.Context) error {
	return c.JSON(http.StatusOK, ParamsResponse{
		Default:    a.defaults.String(),
		WordSizes:  rc5.WordSizes,
		MaxRounds:  rc5.MaxRounds,
		MaxKeySize: rc5.MaxKeySize,
	})
}

func (a *Api) SelfTest(c echo.Context) error {
	results := vectors.RunAll()
	resp := SelfTestResponse{Passed: vectors.Failed(results) == 0, Results: results}
	code := http.StatusOK
	if !resp.Passed {
		code = http.StatusInternalServerError
		log.Error().Int("failed", vectors.Failed(results)).Msg("self test failed")
	}
	return c.JSON(code, resp)
}
