package htmx

// Request headers.
const (
	HeaderRequest     = "HX-Request"
	HeaderBoosted     = "HX-Boosted"
	HeaderCurrentURL  = "HX-Current-URL"
	HeaderTarget      = "HX-Target"
	HeaderTriggerName = "HX-Trigger-Name"
)

// Response headers.
const (
	HeaderRedirect   = "HX-Redirect"
	HeaderRefresh    = "HX-Refresh"
	HeaderPushURL    = "HX-Push-Url"
	HeaderReplaceURL = "HX-Replace-Url"
	HeaderReswap     = "HX-Reswap"
	HeaderRetarget   = "HX-Retarget"
	HeaderTrigger    = "HX-Trigger"
)

// Swap is an hx-swap strategy.
type Swap string

const (
	SwapInnerHTML Swap = "innerHTML"
	SwapOuterHTML Swap = "outerHTML"
	SwapBeforeEnd Swap = "beforeend"
	SwapNone      Swap = "none"
)
