package store

// Logical paths mirror the layout the mobile clients were built against.

const UsersPrefix = "users"

func UserPath(uid string) string {
	return UsersPrefix + "/" + uid
}

func UserDetailsPath(uid string) string {
	return UserPath(uid) + "/user_details"
}

func PushTokenPath(uid string) string {
	return UserPath(uid) + "/push_token"
}

func ParentsPath(uid string) string {
	return UserPath(uid) + "/parents"
}

func VoiceHistoryPath(uid string) string {
	return UserPath(uid) + "/voice_history"
}

func ImportantQuestionsPath(uid string) string {
	return UserPath(uid) + "/imp_ask_question"
}

func RemindersPath(uid string) string {
	return UserPath(uid) + "/medicine_reminders"
}

func ReminderDatePath(uid, date string) string {
	return RemindersPath(uid) + "/" + date
}

func ReminderPath(uid, date, reminderID string) string {
	return ReminderDatePath(uid, date) + "/" + reminderID
}

func ResponsesPrefix(uid string) string {
	return UserPath(uid) + "/health_track/medicine_responses"
}

func ResponsesPath(uid, reminderID string) string {
	return ResponsesPrefix(uid) + "/" + reminderID
}
