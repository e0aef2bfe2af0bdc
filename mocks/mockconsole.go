package mocks

// MockConsole collects everything sent to the developer console
type MockConsole struct {
	Lines []string
}

func (mc *MockConsole) PrintOutput(msg string) {
	mc.Lines = append(mc.Lines, msg)
}
