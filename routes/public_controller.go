package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/pulselabs/pulse-go/app"
	"github.com/pulselabs/pulse-go/httpx"
	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/model"
)

type triggerCheckRequest struct {
	Trigger      string         `json:"trigger"`
	UserID       string         `json:"userId"`
	Traits       map[string]any `json:"traits,omitempty"`
	AppVersion   string         `json:"appVersion"`
	Platform     string         `json:"platform"`
	DeviceLocale string         `json:"deviceLocale"`
}

func CheckTrigger(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := triggerCheckRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Status(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if req.Trigger == "" {
			httpx.Statusf(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "missing trigger")
			return
		}

		survey, err := loadSurveyByTrigger(r, app, req.Trigger)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				render.JSON(w, r, map[string]any{"show": false})
			} else {
				httpx.Internal(w, "db.get_survey", err)
			}
			return
		}

		render.JSON(w, r, map[string]any{
			"show":   true,
			"survey": survey,
		})
	}
}

func loadSurveyByTrigger(r *http.Request, app app.App, trigger string) (*model.Survey, error) {
	survey := &model.Survey{}
	var themeJson sql.NullString
	err := app.QueryRowContext(r.Context(), `
		SELECT id, version, title, description, theme
		FROM survey
		WHERE trigger_name = ?`,
		trigger,
	).Scan(&survey.ID, &survey.Version, &survey.Title, &survey.Description, &themeJson)
	if err != nil {
		return nil, err
	}

	if themeJson.Valid && themeJson.String != "" {
		err = json.Unmarshal([]byte(themeJson.String), &survey.Theme)
		if err != nil {
			// a broken stored theme must not hide the survey; the SDK
			// resolves a nil theme to defaults anyway
			log.Warnf("db.get_survey.parse_theme: %s", err)
			survey.Theme = nil
		}
	}

	rows, err := app.QueryContext(r.Context(), `
		SELECT id, type, text, options, placeholder
		FROM question
		WHERE survey_id = ?
		ORDER BY position`,
		survey.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		q := model.Question{}
		var opts, placeholder sql.NullString
		err = rows.Scan(&q.ID, &q.Type, &q.Text, &opts, &placeholder)
		if err != nil {
			return nil, err
		}

		if opts.Valid && opts.String != "" {
			err = json.Unmarshal([]byte(opts.String), &q.Options)
			if err != nil {
				return nil, err
			}
		}
		q.Placeholder = placeholder.String

		survey.Questions = append(survey.Questions, q)
	}
	return survey, rows.Err()
}

type submissionRequest struct {
	SurveyID      string         `json:"surveyId"`
	UserID        string         `json:"userId"`
	Trigger       string         `json:"trigger"`
	Answers       []model.Answer `json:"answers"`
	Metadata      metadata       `json:"metadata"`
	SurveyVersion int            `json:"surveyVersion,omitempty"`
}

type metadata struct {
	AppVersion   string `json:"appVersion"`
	Platform     string `json:"platform"`
	DeviceLocale string `json:"deviceLocale"`
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := submissionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Status(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if req.SurveyID == "" || req.UserID == "" {
			httpx.Statusf(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "missing surveyId or userId")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.Internal(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var responseId int
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO response (survey_id, survey_version, user_id, trigger_name, time, app_version, platform, device_locale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			req.SurveyID,
			req.SurveyVersion,
			req.UserID,
			req.Trigger,
			time.Now(),
			req.Metadata.AppVersion,
			req.Metadata.Platform,
			req.Metadata.DeviceLocale,
		).Scan(&responseId)
		if err != nil {
			httpx.Internal(w, "db.insert_response", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO response_answer (response_id, question_id, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.Internal(w, "db.insert_response.answers.prepare", err)
			return
		}
		defer stmt.Close()

		for _, a := range req.Answers {
			_, err = stmt.ExecContext(r.Context(), responseId, a.QuestionID, a.Value)
			if err != nil {
				httpx.Internal(w, "db.insert_response.answers.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.Internal(w, "db.insert_response.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"status": "received",
		})
	}
}

type pingRequest struct {
	Platform     string `json:"platform"`
	AppVersion   string `json:"appVersion"`
	DeviceLocale string `json:"deviceLocale"`
	SDKVersion   string `json:"sdkVersion"`
}

func Ping(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := pingRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.Status(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO ping (time, platform, app_version, device_locale, sdk_version)
			VALUES (?, ?, ?, ?, ?)`,
			time.Now(),
			req.Platform,
			req.AppVersion,
			req.DeviceLocale,
			req.SDKVersion,
		)
		if err != nil {
			httpx.Internal(w, "db.insert_ping", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"status": "ok",
		})
	}
}
