package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/pulselabs/pulse-go/app"
	"github.com/pulselabs/pulse-go/httpx"
	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/model"
)

// surveyPayload is what the admin API accepts: a survey plus the trigger it
// answers to.
type surveyPayload struct {
	Trigger     string           `json:"trigger"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
	Theme       *model.Theme     `json:"theme,omitempty"`
}

func (p *surveyPayload) validate() error {
	if p.Trigger == "" {
		return errors.New("missing trigger")
	}
	if p.Title == "" {
		return errors.New("missing title")
	}
	seen := map[string]bool{}
	for i, q := range p.Questions {
		switch q.Type {
		case model.QuestionMultipleChoice, model.QuestionRating, model.QuestionText:
		default:
			return fmt.Errorf("question %d: unknown type %q", i, q.Type)
		}
		if q.Text == "" {
			return fmt.Errorf("question %d: missing text", i)
		}
		if q.ID != "" {
			if seen[q.ID] {
				return fmt.Errorf("question %d: duplicate id %q", i, q.ID)
			}
			seen[q.ID] = true
		}
	}
	return nil
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := surveyPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.Status(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if err = payload.validate(); err != nil {
			httpx.Statusf(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		themeJson, err := marshalTheme(payload.Theme)
		if err != nil {
			httpx.Internal(w, "db.insert_survey.parse_theme", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.Internal(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		surveyId := newSurveyId()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO survey (id, trigger_name, version, title, description, theme)
			VALUES (?, ?, 1, ?, ?, ?)`,
			surveyId,
			payload.Trigger,
			payload.Title,
			payload.Description,
			themeJson,
		)
		if err != nil {
			httpx.Internal(w, "db.insert_survey", err)
			return
		}

		err = insertQuestions(r.Context(), tx, surveyId, payload.Questions)
		if err != nil {
			httpx.Internal(w, "db.insert_survey.questions", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.Internal(w, "db.insert_survey.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": surveyId,
		})
	}
}

func newSurveyId() string {
	id, err := uuid.NewV4()
	if err != nil {
		// practically unreachable; keep the insert going with a
		// time-flavored id rather than failing the request
		return fmt.Sprintf("survey-%d", time.Now().UnixNano())
	}
	return id.String()
}

func marshalTheme(t *model.Theme) (string, error) {
	if t == nil {
		return "", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, surveyId string, questions []model.Question) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO question (survey_id, id, position, type, text, options, placeholder)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	// Generated ids must not land on an explicitly supplied one: "q2" next
	// to a blank id would otherwise collide on the primary key.
	taken := map[string]bool{}
	for _, q := range questions {
		taken[q.ID] = true
	}

	next := 1
	for i, q := range questions {
		id := q.ID
		if id == "" {
			for taken[fmt.Sprintf("q%d", next)] {
				next++
			}
			id = fmt.Sprintf("q%d", next)
			taken[id] = true
		}

		var optionsJson string
		if q.Options != nil {
			data, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			optionsJson = string(data)
		}

		_, err = stmt.ExecContext(ctx, surveyId, id, i, q.Type, q.Text, optionsJson, q.Placeholder)
		if err != nil {
			return err
		}
	}
	return nil
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT s.id, s.trigger_name, s.version, s.title, s.description
			FROM survey s
			ORDER BY s.trigger_name`)
		if err != nil {
			httpx.Internal(w, "db.get_surveys", err)
			return
		}
		defer rows.Close()

		surveys := []surveyPayload{}
		for rows.Next() {
			s := surveyPayload{}
			var id string
			var version int
			err = rows.Scan(&id, &s.Trigger, &version, &s.Title, &s.Description)
			if err != nil {
				httpx.Internal(w, "db.get_surveys.scan", err)
				return
			}
			surveys = append(surveys, s)
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyByTrigger(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trigger := chi.URLParam(r, "trigger")

		survey, err := loadSurveyByTrigger(r, app, trigger)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.NotFound(w, "get_survey", trigger)
			} else {
				httpx.Internal(w, "db.get_survey", err)
			}
			return
		}

		render.JSON(w, r, survey)
	}
}

// UpdateSurvey replaces a survey's content in place and bumps its version,
// so submissions can be told apart across edits.
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trigger := chi.URLParam(r, "trigger")

		payload := surveyPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.Status(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		payload.Trigger = trigger
		if err = payload.validate(); err != nil {
			httpx.Statusf(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		themeJson, err := marshalTheme(payload.Theme)
		if err != nil {
			httpx.Internal(w, "db.update_survey.parse_theme", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.Internal(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var surveyId string
		var version int
		err = tx.QueryRowContext(r.Context(), `
			UPDATE survey
			SET title = ?, description = ?, theme = ?, version = version + 1
			WHERE trigger_name = ?
			RETURNING id, version`,
			payload.Title,
			payload.Description,
			themeJson,
			trigger,
		).Scan(&surveyId, &version)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.NotFound(w, "update_survey", trigger)
			} else {
				httpx.Internal(w, "db.update_survey", err)
			}
			return
		}

		_, err = tx.ExecContext(r.Context(), "DELETE FROM question WHERE survey_id = ?", surveyId)
		if err != nil {
			httpx.Internal(w, "db.update_survey.clear_questions", err)
			return
		}

		err = insertQuestions(r.Context(), tx, surveyId, payload.Questions)
		if err != nil {
			httpx.Internal(w, "db.update_survey.questions", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.Internal(w, "db.update_survey.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id":      surveyId,
			"version": version,
		})
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trigger := chi.URLParam(r, "trigger")

		res, err := app.ExecContext(r.Context(), "DELETE FROM survey WHERE trigger_name = ?", trigger)
		if err != nil {
			httpx.Internal(w, "db.delete_survey", err)
			return
		}

		deleted, err := res.RowsAffected()
		if err != nil {
			httpx.Internal(w, "db.delete_survey.rows_affected", err)
			return
		}
		if deleted == 0 {
			httpx.NotFound(w, "delete_survey", trigger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type responseRecord struct {
	ID            int            `json:"id"`
	Time          time.Time      `json:"time"`
	UserID        string         `json:"userId"`
	SurveyVersion int            `json:"surveyVersion,omitempty"`
	Answers       []model.Answer `json:"answers"`
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trigger := chi.URLParam(r, "trigger")

		rows, err := app.QueryContext(r.Context(), `
			SELECT r.id, r.time, r.user_id, r.survey_version, a.question_id, a.value
			FROM response r
			LEFT OUTER JOIN response_answer a ON (r.id = a.response_id)
			WHERE r.trigger_name = ?
			ORDER BY r.id`,
			trigger,
		)
		if err != nil {
			httpx.Internal(w, "db.get_responses", err)
			return
		}
		defer rows.Close()

		responses := []responseRecord{}
		for rows.Next() {
			var (
				id, version       int
				t                 time.Time
				userId            string
				questionId, value sql.NullString
			)
			err = rows.Scan(&id, &t, &userId, &version, &questionId, &value)
			if err != nil {
				httpx.Internal(w, "db.get_responses.scan", err)
				return
			}

			if len(responses) == 0 || responses[len(responses)-1].ID != id {
				responses = append(responses, responseRecord{
					ID:            id,
					Time:          t,
					UserID:        userId,
					SurveyVersion: version,
					Answers:       []model.Answer{},
				})
			}
			if questionId.Valid {
				last := &responses[len(responses)-1]
				last.Answers = append(last.Answers, model.Answer{
					QuestionID: questionId.String,
					Value:      value.String,
				})
			}
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}
