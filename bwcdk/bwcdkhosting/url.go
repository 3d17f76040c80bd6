package bwcdkhosting

// BranchURL returns the URL a branch of an app is served at, given the app's
// default domain ("<appId>.amplifyapp.com").
func BranchURL(branch, defaultDomain string) string {
	return "https://" + branch + "." + defaultDomain
}

// SiteURL returns the URL a branch is served at, given the app identifier and the
// platform domain. It equals BranchURL once the app's default domain is known.
func SiteURL(branch, appID, platformDomain string) string {
	return BranchURL(branch, appID+"."+platformDomain)
}
