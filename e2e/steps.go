package e2e

import (
	"github.com/cucumber/godog"

	"screenboard/e2e/steps/auth"
	"screenboard/e2e/steps/common"
	"screenboard/e2e/steps/workspace"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	workspace.RegisterSteps(ctx, tc)
}
