package ai

func IsReasoningModelForTest(p *OpenAIProvider) bool {
	return p.isReasoningModel()
}
