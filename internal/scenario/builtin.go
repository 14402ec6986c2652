package scenario

// BaseURL is the Vite dev server address the builtin catalogue targets.
// Individual runs can rebase scenarios onto another host via config; the
// catalogue data itself always carries the canonical dev URL.
const BaseURL = "http://localhost:5173"

// builtin is the reference catalogue for the P-Type typing game. It is
// constructed once at package load and never mutated.
//
// Every scenario is fully self-contained: shared setup (navigating to the
// game, starting a run) is inlined rather than referenced, so scenarios can
// execute in any order without assuming prior state.
var builtin = mustNew(
	Scenario{
		Name:        "Main Menu Navigation",
		Description: "Game loads and the main menu renders with the default mode selected.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionSnapshot, Description: "Capture the main menu DOM"},
			{Action: ActionScreenshot, Description: "Capture the main menu", Path: "main-menu.png"},
			{
				Action:      ActionEvaluate,
				Description: "Mode selector shows the default mode",
				Expression:  `document.querySelector('[data-testid="mode-selector"]').textContent.trim()`,
				Expect:      Literal("Normal"),
			},
		},
	},
	Scenario{
		Name:        "Mode Selection",
		Description: "Clicking the mode selector cycles from Normal to Pacifist.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Cycle the game mode", Locator: `[data-testid="mode-selector"]`},
			{Action: ActionScreenshot, Description: "Capture the selected mode", Path: "mode-pacifist.png"},
			{
				Action:      ActionEvaluate,
				Description: "Mode selector shows Pacifist",
				Expression:  `document.querySelector('[data-testid="mode-selector"]').textContent.trim()`,
				Expect:      Literal("Pacifist"),
			},
		},
	},
	Scenario{
		Name:        "Normal Mode Gameplay",
		Description: "Starting a run spawns enemies and typing a word destroys one.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Start a Normal run", Locator: `[data-testid="start-button"]`},
			{Action: ActionWait, Description: "Wait for the first wave", Seconds: 3},
			{Action: ActionSnapshot, Description: "Capture the battlefield DOM"},
			{
				Action:      ActionType,
				Description: "Type the first enemy's word, paced like a player",
				Locator:     `[data-testid="typing-input"]`,
				Text:        "nebula",
				Paced:       true,
			},
			{Action: ActionWait, Description: "Let the destruction animation finish", Seconds: 1},
			{Action: ActionScreenshot, Description: "Capture gameplay", Path: "gameplay.png"},
			{
				Action:      ActionEvaluate,
				Description: "Score increased after the kill",
				Expression:  `window.ptype.state.score`,
				Expect:      Predicate("score above zero", OpGreater, 0),
			},
		},
	},
	Scenario{
		Name:        "Settings Menu",
		Description: "Settings panel opens, toggles sound, and closes with Escape.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Open settings", Locator: `[data-testid="settings-button"]`},
			{
				Action:      ActionEvaluate,
				Description: "Settings panel is visible",
				Expression:  `document.querySelector('[data-testid="settings-panel"]') !== null`,
				Expect:      Literal("true"),
			},
			{Action: ActionClick, Description: "Toggle sound effects", Locator: `[data-testid="sound-toggle"]`},
			{Action: ActionScreenshot, Description: "Capture the settings panel", Path: "settings.png"},
			{Action: ActionPressKey, Description: "Close settings", Key: "Escape"},
			{
				Action:      ActionEvaluate,
				Description: "Settings panel is gone",
				Expression:  `document.querySelector('[data-testid="settings-panel"]') === null`,
				Expect:      Literal("true"),
			},
		},
	},
	Scenario{
		Name:        "Pause and Resume",
		Description: "Escape pauses a running game and Escape again resumes it.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Start a run", Locator: `[data-testid="start-button"]`},
			{Action: ActionWait, Description: "Wait for the first wave", Seconds: 3},
			{Action: ActionPressKey, Description: "Pause the game", Key: "Escape"},
			{Action: ActionScreenshot, Description: "Capture the pause overlay", Path: "paused.png"},
			{
				Action:      ActionEvaluate,
				Description: "Pause overlay is shown",
				Expression:  `document.querySelector('[data-testid="pause-overlay"]') !== null`,
				Expect:      Literal("true"),
			},
			{Action: ActionPressKey, Description: "Resume the game", Key: "Escape"},
			{Action: ActionWait, Description: "Let the game loop resume", Seconds: 1},
			{
				Action:      ActionEvaluate,
				Description: "Pause overlay is gone",
				Expression:  `document.querySelector('[data-testid="pause-overlay"]') === null`,
				Expect:      Literal("true"),
			},
		},
	},
	Scenario{
		Name:        "Game Over and Restart",
		Description: "An ignored wave ends the run and the restart button starts a fresh one.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Start a run", Locator: `[data-testid="start-button"]`},
			{Action: ActionWait, Description: "Let enemies reach the player", Seconds: 25},
			{
				Action:      ActionEvaluate,
				Description: "Game over screen is shown",
				Expression:  `document.querySelector('[data-testid="game-over"]') !== null`,
				Expect:      Literal("true"),
			},
			{Action: ActionScreenshot, Description: "Capture the game over screen", Path: "game-over.png"},
			{Action: ActionClick, Description: "Restart", Locator: `[data-testid="restart-button"]`},
			{Action: ActionWait, Description: "Wait for the fresh run", Seconds: 3},
			{
				Action:      ActionEvaluate,
				Description: "Score reset for the new run",
				Expression:  `window.ptype.state.score`,
				Expect:      Predicate("score back at zero", OpEqual, 0),
			},
		},
	},
	Scenario{
		Name:        "Performance Baseline",
		Description: "The render loop sustains a playable frame rate during combat.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Start a run", Locator: `[data-testid="start-button"]`},
			{Action: ActionWait, Description: "Let several waves spawn", Seconds: 5},
			{
				Action:      ActionEvaluate,
				Description: "Sample the frame rate over one second",
				Expression: `new Promise(resolve => {
					let frames = 0;
					const start = performance.now();
					const tick = () => {
						frames++;
						if (performance.now() - start < 1000) {
							requestAnimationFrame(tick);
						} else {
							resolve(frames);
						}
					};
					requestAnimationFrame(tick);
				})`,
				Expect: Predicate("frames per second at least 30", OpGreaterOrEqual, 30),
			},
		},
	},
	Scenario{
		Name:        "Console Health",
		Description: "A short play session produces no console errors.",
		Steps: []Step{
			{Action: ActionNavigate, Description: "Open the game", URL: BaseURL},
			{Action: ActionWait, Description: "Let the menu scene settle", Seconds: 2},
			{Action: ActionClick, Description: "Start a run", Locator: `[data-testid="start-button"]`},
			{Action: ActionWait, Description: "Wait for the first wave", Seconds: 3},
			{
				Action:      ActionType,
				Description: "Type through one enemy",
				Locator:     `[data-testid="typing-input"]`,
				Text:        "quasar",
				Paced:       true,
			},
			{Action: ActionWait, Description: "Let the session run", Seconds: 2},
			{Action: ActionConsoleMessages, Description: "No errors were logged", ErrorsOnly: true},
		},
	},
)

// Default returns the builtin P-Type catalogue.
func Default() *Catalogue {
	return builtin
}
