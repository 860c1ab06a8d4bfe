package constants

// 사용자 인터페이스 메시지
const (
	// 친구 추가 관련
	MsgAddUsage          = "Usage: `!add <leetcode|cf> <username>`"
	MsgAddSuccess        = "Added **%s** on %s! Fetching their stats now... 🎉"
	MsgDuplicateUser     = "You're not allowed to add the same friend! 🤥"
	MsgInvalidPlatform   = "Unknown platform `%s`. Supported platforms: LeetCode (`leetcode`), CodeForces (`cf`)."
	MsgPlatformNotListed = "AtCoder tracking is not available yet."
	MsgInvalidHandle     = "`%s` doesn't look like a valid username. Please try again."
	MsgRosterFull        = "You can track up to %d friends. Remove someone first!"

	// 친구 삭제 관련
	MsgRemoveUsage   = "Usage: `!remove <leetcode|cf> <username>`"
	MsgRemoveSuccess = "**Friend removed**\n🎯 %s: %s"

	// 조회 실패 관련 (원격 API 응답 기반)
	MsgUserNotFound      = "The user **%s** was not found on %s. Please try again."
	MsgUpstreamError     = "The API server might be down, or the rate limit has been reached! Please try again later."
	MsgRemovedFromRoster = "**%s** has been removed from your %s friends."

	// 스코어보드 관련
	MsgScoreboardTitle     = "🏆 Friends Scoreboard (%s)"
	MsgScoreboardEmpty     = "No friends tracked yet. Add one with `!add <leetcode|cf> <username>`!"
	MsgScoreboardNoResults = "None of your friends' stats could be fetched right now."

	// 정렬 관련
	MsgSortUsage   = "Usage: `!sort <daily|alltime>`"
	MsgSortChanged = "Scoreboard sort mode set to **%s**."

	// 친구 목록 관련
	MsgFriendsEmpty = "You're not tracking anyone yet."
	MsgFriendsTitle = "👥 Tracked friends"

	// 프로필 관련
	MsgProfileUsage = "Usage: `!profile <leetcode|cf> <username>`"

	// 내보내기 관련
	MsgExportSuccess  = "Scoreboard exported to Google Sheets! 📊"
	MsgExportDisabled = "Sheets export is not configured."

	// 기본 응답
	MsgPong = "Pong! 🏓"
)

// 도움말 메시지
const HelpMessage = `🤖 **cp-buddies commands**

• ` + "`!add <leetcode|cf> <username>`" + ` - Track a friend on LeetCode or CodeForces
• ` + "`!remove <leetcode|cf> <username>`" + ` - Stop tracking a friend
• ` + "`!friends`" + ` - List tracked friends per platform
• ` + "`!scoreboard [daily|alltime]`" + ` - Show the scoreboard
• ` + "`!sort <daily|alltime>`" + ` - Change the default sort mode
• ` + "`!profile <leetcode|cf> <username>`" + ` - Show a friend's profile links
• ` + "`!export`" + ` - Export the scoreboard to Google Sheets
• ` + "`!cache`" + ` - Show API cache statistics
• ` + "`!ping`" + ` - Check that the bot is alive`
