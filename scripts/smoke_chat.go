package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, ask can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

func main() {
	color.Cyan("🚀 Starting Gateway Smoke Test\n")

	// 1. Create a chat session
	color.Yellow("\n[CHAT] 1. Create Session")
	resp, body, err := sendRequest("POST", "/chat/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	sessionResp := decode(body)
	prettyPrint(sessionResp)

	var sessionID string
	if data, ok := sessionResp["data"].(map[string]interface{}); ok {
		if id, ok := data["session_id"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		color.Red("No session_id in response, aborting")
		os.Exit(1)
	}

	// 2. Ask a suggestion-chip question
	color.Yellow("\n[CHAT] 2. Ask 'What is MetLife?'")
	resp, body, err = sendRequest("POST", "/chat/v1/ask", map[string]interface{}{
		"session_id": sessionID,
		"query":      "What is MetLife?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 3. Session stats after one turn
	color.Yellow("\n[CHAT] 3. Get Stats")
	resp, body, _ = sendRequest("GET", "/chat/v1/stats/"+sessionID, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 4. Start the guided flow and confirm manual sends are locked out
	color.Yellow("\n[CHAT] 4. Start Guided Flow")
	resp, body, err = sendRequest("POST", "/chat/v1/flow", map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Yellow("\n[CHAT] 5. Manual ask during flow (expect 409)")
	resp, body, _ = sendRequest("POST", "/chat/v1/ask", map[string]interface{}{
		"session_id": sessionID,
		"query":      "Should be rejected",
	})
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// Give the flow time to work through a few questions
	color.Cyan("\nWaiting 10s for the flow to progress...")
	time.Sleep(10 * time.Second)

	color.Yellow("\n[CHAT] 6. Get History")
	resp, body, _ = sendRequest("GET", "/chat/v1/history/"+sessionID, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 7. Document dashboard round trip
	color.Yellow("\n[DOCS] 7. Open Dashboard")
	resp, body, _ = sendRequest("GET", "/document/v1/"+sessionID, nil)
	color.Green("Status: %s", resp.Status)
	dashResp := decode(body)
	prettyPrint(dashResp)

	var firstFile string
	if data, ok := dashResp["data"].(map[string]interface{}); ok {
		if files, ok := data["files"].([]interface{}); ok && len(files) > 0 {
			firstFile, _ = files[0].(string)
		}
	}

	if firstFile != "" {
		color.Yellow("\n[DOCS] 8. Request Delete '%s' then Cancel", firstFile)
		resp, body, _ = sendRequest("POST", "/document/v1/"+sessionID+"/delete-request", map[string]interface{}{
			"file_name": firstFile,
		})
		color.Green("Status: %s", resp.Status)
		prettyPrint(decode(body))

		resp, body, _ = sendRequest("POST", "/document/v1/"+sessionID+"/delete-cancel", nil)
		color.Green("Status: %s", resp.Status)
		prettyPrint(decode(body))
	} else {
		color.Cyan("\n[DOCS] 8. No files listed, skipping delete round trip")
	}

	// 9. Reset without confirmation must be refused
	color.Yellow("\n[DOCS] 9. Reset without confirm (expect 400)")
	resp, body, _ = sendRequest("DELETE", "/document/v1/"+sessionID+"/reset", map[string]interface{}{
		"confirm": false,
	})
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Cyan("\n✅ Smoke test finished")
}
