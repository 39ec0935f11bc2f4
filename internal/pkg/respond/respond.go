// Package respond padroniza a escrita de respostas JSON e a decodificação de payloads.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
)

var validate = newValidator()

// newValidator usa o nome da tag json nas mensagens de erro.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// JSON escreve data como JSON com o status informado. data nil gera corpo vazio.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil && log != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para o status HTTP e escreve o corpo padronizado de erro.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		} else {
			log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
				map[string]interface{}{"path": r.URL.Path, "method": r.Method})
		}
	}

	JSON(w, nil, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Service processa o resultado de uma chamada de serviço: erro tipado ou sucesso com successStatus.
func Service(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	JSON(w, log, successStatus, data)
}

// Decode lê o corpo JSON em dst e executa as regras `validate` da struct.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewValidationError("Corpo da requisição vazio.")
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return Struct(dst)
}

// Struct valida uma struct com as tags `validate`.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", fe.Field(), fe.Tag()))
		}
		return apperror.NewValidationError(strings.Join(msgs, "; "))
	}
	return apperror.NewValidationError(err.Error())
}

// IDParam lê o parâmetro de rota name como um ID positivo.
func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("Parâmetro '%s' deve ser um ID positivo.", name))
	}
	return id, nil
}

// IntQuery lê o parâmetro de query name. ok é falso quando ausente.
func IntQuery(r *http.Request, name string) (value int64, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperror.NewValidationError(fmt.Sprintf("Parâmetro '%s' deve ser um número inteiro.", name))
	}
	return value, true, nil
}
