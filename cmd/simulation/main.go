package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api/v1/tools"

// Simplified DTOs for the script
type nextQuestionResponse struct {
	Data struct {
		Question *struct {
			Id     string `json:"id"`
			Skill  string `json:"skill"`
			Prompt string `json:"prompt"`
		} `json:"question"`
		PlanIndex int  `json:"plan_index"`
		Completed bool `json:"completed"`
	} `json:"data"`
}

type gradeResponse struct {
	Data struct {
		Score        float64 `json:"score"`
		AutoFeedback string  `json:"auto_feedback"`
	} `json:"data"`
}

type difficultyResponse struct {
	Data struct {
		NewLevel  int    `json:"new_level"`
		Rationale string `json:"rationale"`
	} `json:"data"`
}

type finalizeResponse struct {
	Data struct {
		ReportURL string `json:"report_url"`
		Summary   string `json:"summary"`
	} `json:"data"`
}

// Canned answers per skill so the run is repeatable.
var answers = map[string]string{
	"excel_basics":    "I built a budget workbook using pivot tables, XLOOKUP and conditional formatting to track monthly spend against forecast.",
	"excel_formulas":  "I would clean both lists with TRIM and Power Query, then match IDs using XLOOKUP with IFERROR and flag leftovers with COUNTIF.",
	"excel_analysis":  "I would load the rows into Power Query, build a pivot table over region and product, add slicers and chart the top drivers.",
	"professionalism": "I coached a teammate through VLOOKUP by pairing on a real report; next time I would record a short walkthrough too.",
}

func main() {
	sessionID := fmt.Sprintf("sim_%d", time.Now().Unix())
	color.Cyan("=== Interview Simulation Client ===")
	color.Cyan("Session: %s\n", sessionID)

	for turn := 1; ; turn++ {
		var nq nextQuestionResponse
		if err := post("/get_next_question", map[string]interface{}{"session_id": sessionID}, &nq); err != nil {
			color.Red("get_next_question failed: %v", err)
			return
		}
		// The last curriculum question arrives with completed=true, so only
		// a missing question ends the loop.
		if nq.Data.Question == nil {
			color.Yellow("Plan complete after %d turns", turn-1)
			break
		}

		q := nq.Data.Question
		color.White("\n[%d] INTERVIEWER (%s): %s", turn, q.Skill, q.Prompt)

		answer := answers[q.Skill]
		color.White("CANDIDATE: %s", answer)

		var grade gradeResponse
		if err := post("/grade_answer", map[string]interface{}{
			"session_id":     sessionID,
			"question_id":    q.Id,
			"answer_payload": map[string]interface{}{"text": answer},
		}, &grade); err != nil {
			color.Red("grade_answer failed: %v", err)
			return
		}
		color.Green("Score: %.0f/100 | %s", grade.Data.Score, grade.Data.AutoFeedback)

		if err := post("/record_outcome", map[string]interface{}{
			"session_id":  sessionID,
			"question_id": q.Id,
			"score":       grade.Data.Score / 100,
			"time_ms":     45000,
			"difficulty":  2,
			"meta": map[string]interface{}{
				"skill":          q.Skill,
				"answer_payload": map[string]interface{}{"text": answer},
				"hints_used":     0,
			},
		}, nil); err != nil {
			color.Red("record_outcome failed: %v", err)
			return
		}

		var diff difficultyResponse
		if err := post("/update_difficulty", map[string]interface{}{"session_id": sessionID}, &diff); err != nil {
			color.Red("update_difficulty failed: %v", err)
			return
		}
		color.Yellow("Difficulty: %d (%s)", diff.Data.NewLevel, diff.Data.Rationale)

		time.Sleep(500 * time.Millisecond)
	}

	var fin finalizeResponse
	if err := post("/finalize_session", map[string]interface{}{"session_id": sessionID}, &fin); err != nil {
		color.Red("finalize_session failed: %v", err)
		return
	}
	color.Cyan("\n%s", fin.Data.Summary)
	color.Cyan("Report: %s", fin.Data.ReportURL)
}

func post(path string, payload interface{}, out interface{}) error {
	jsonBytes, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
