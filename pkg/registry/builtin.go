// pkg/registry/builtin.go
package registry

const BuiltinVersion = "1.0.0"

func obj(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str() map[string]interface{} { return map[string]interface{}{"type": "string"} }

// Builtin returns the activities this repository ships workers for.
func Builtin() *ActivityRegistry {
	reg := &ActivityRegistry{
		Version: BuiltinVersion,
		Activities: []Activity{
			{
				ID:          "evaluate-eligibility",
				DisplayName: "Evaluate Eligibility",
				Description: "Evaluates a student profile against the scholarship catalog",
				Category:    "eligibility",
				TaskType:    "evaluate-eligibility",
				InputSchema: obj(nil, map[string]interface{}{
					"userId": str(), "scholarshipId": str(), "profile": map[string]interface{}{"type": "object"},
				}),
				ErrorCodes: []string{"INVALID_INPUT", "PROFILE_NOT_FOUND", "PROFILE_STORE_FAILED", "SCHOLARSHIP_NOT_FOUND"},
				Timeout:    "10s",
				Retries:    3,
				Workflows:  []string{"scholarship-discovery"},
			},
			{
				ID:          "order-scholarships",
				DisplayName: "Order Scholarships",
				Description: "Orders portals and scholarships with the student's own state first",
				Category:    "eligibility",
				TaskType:    "order-scholarships",
				InputSchema: obj(nil, map[string]interface{}{"state": str(), "userId": str()}),
				ErrorCodes:  []string{"PROFILE_STORE_FAILED"},
				Timeout:     "10s",
				Retries:     3,
				Workflows:   []string{"scholarship-discovery"},
			},
			{
				ID:          "save-profile-step",
				DisplayName: "Save Profile Step",
				Description: "Validates and persists one step of the profile wizard",
				Category:    "profile",
				TaskType:    "save-profile-step",
				InputSchema: obj([]string{"userId"}, map[string]interface{}{
					"userId": str(), "email": str(), "step": map[string]interface{}{"type": "integer"},
					"action": map[string]interface{}{"type": "string", "enum": []string{"next", "previous", "resume", "reopen", "clear"}},
					"form":   map[string]interface{}{"type": "object"},
				}),
				ErrorCodes: []string{"INVALID_INPUT", "PROFILE_VALIDATION_FAILED", "PROFILE_ALREADY_COMPLETE", "PROFILE_NOT_FOUND", "PROFILE_STORE_FAILED"},
				Timeout:    "15s",
				Retries:    3,
				Workflows:  []string{"student-onboarding"},
			},
			{
				ID:          "track-application",
				DisplayName: "Track Application",
				Description: "Adds, updates, removes and lists saved scholarship applications",
				Category:    "tracker",
				TaskType:    "track-application",
				InputSchema: obj([]string{"userId"}, map[string]interface{}{
					"userId": str(), "applicationId": str(), "status": str(),
					"action":      map[string]interface{}{"type": "string", "enum": []string{"add", "update", "update-status", "remove", "list"}},
					"application": map[string]interface{}{"type": "object"},
				}),
				ErrorCodes: []string{"INVALID_INPUT", "APPLICATION_NOT_FOUND", "APPLICATION_VALIDATION_FAILED", "QUERY_EXECUTION_FAILED"},
				Timeout:    "10s",
				Retries:    3,
				Workflows:  []string{"application-tracking"},
			},
			{
				ID:          "chatbot-reply",
				DisplayName: "Chatbot Reply",
				Description: "Answers a student question with links, priority lists or a generated reply",
				Category:    "chat",
				TaskType:    "chatbot-reply",
				InputSchema: obj([]string{"message"}, map[string]interface{}{"message": str(), "userId": str()}),
				ErrorCodes:  []string{"INVALID_INPUT", "LLM_TIMEOUT", "LLM_SYNTHESIS_FAILED"},
				Timeout:     "60s",
				Retries:     1,
				Workflows:   []string{"student-assistant"},
			},
			{
				ID:          "send-welcome-email",
				DisplayName: "Send Welcome Email",
				Description: "Sends the welcome email and an optional SMS after sign-up",
				Category:    "communication",
				TaskType:    "send-welcome-email",
				InputSchema: obj([]string{"email"}, map[string]interface{}{
					"email": map[string]interface{}{"type": "string", "format": "email"}, "name": str(), "phoneNumber": str(),
				}),
				ErrorCodes: []string{"INVALID_INPUT", "NOTIFICATION_SEND_FAILED"},
				Timeout:    "30s",
				Retries:    3,
				Workflows:  []string{"student-onboarding"},
			},
			{
				ID:          "search-scholarships",
				DisplayName: "Search Scholarships",
				Description: "Full-text search over the indexed scholarship catalog",
				Category:    "search",
				TaskType:    "search-scholarships",
				InputSchema: obj(nil, map[string]interface{}{
					"query": str(), "state": str(), "size": map[string]interface{}{"type": "integer"},
					"kind": map[string]interface{}{"type": "string", "enum": []string{"portal", "individual"}},
				}),
				ErrorCodes: []string{"INVALID_INPUT", "INDEX_NOT_FOUND", "SEARCH_TIMEOUT", "SEARCH_QUERY_FAILED"},
				Timeout:    "10s",
				Retries:    2,
				Workflows:  []string{"scholarship-discovery"},
			},
		},
	}
	for i := range reg.Activities {
		reg.Activities[i].Version = BuiltinVersion
		reg.Activities[i].ImplementationStatus = "completed"
	}
	return reg
}
