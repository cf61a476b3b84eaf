package i18n

import "golang.org/x/text/language"

var messages = map[language.Tag]map[string]string{
	language.English: {
		"app.title":             "Book Management",
		"label.title":           "Title",
		"label.author":          "Author",
		"label.version":         "Version",
		"label.username":        "Username",
		"label.password":        "Password",
		"label.updatedBy":       "Updated by",
		"label.updatedAt":       "Updated at",
		"button.create":         "Create",
		"button.update":         "Update",
		"button.delete":         "Delete",
		"button.new":            "New",
		"button.login":          "Sign in",
		"button.logout":         "Sign out",
		"button.export":         "Export to Excel",
		"page.books":            "Books",
		"page.admin":            "Administration",
		"page.login":            "Sign in",
		"page.error":            "Error",
		"message.welcome":       "Signed in as %s",
		"login.failure":         "Invalid username or password.",
		"login.locked":          "Too many failed attempts. Try again later.",
		"login.logout":          "You have been signed out.",
		"login.invalidsession":  "Your session is no longer valid. Please sign in again.",
		KeyBookNotFound:         "The book was not found.",
		KeyOptimisticConflict:   "The book was changed by another user. Reload it and try again.",
		KeyValidation:           "The input contains errors.",
		KeySystemError:          "A system error occurred. Please contact the administrator.",
		KeyForbidden:            "You are not allowed to access this page.",
		"validation.required":   "%s is required",
		"validation.not-blank":  "%s must not be blank",
		"validation.max-size":   "%s must be at most %d characters",
		"validation.malformed":  "The submitted form could not be read",
		"export.sheet":          "Books",
		"export.header.id":      "ID",
		"export.header.created": "Created at",
	},
	language.Japanese: {
		"app.title":             "書籍管理システム",
		"label.title":           "タイトル",
		"label.author":          "著者",
		"label.version":         "バージョン",
		"label.username":        "ユーザ名",
		"label.password":        "パスワード",
		"label.updatedBy":       "更新ユーザ",
		"label.updatedAt":       "更新日時",
		"button.create":         "登録",
		"button.update":         "更新",
		"button.delete":         "削除",
		"button.new":            "新規",
		"button.login":          "ログイン",
		"button.logout":         "ログアウト",
		"button.export":         "Excel出力",
		"page.books":            "書籍一覧",
		"page.admin":            "管理者画面",
		"page.login":            "ログイン",
		"page.error":            "エラー",
		"message.welcome":       "%s でログイン中",
		"login.failure":         "ユーザ名またはパスワードが違います。",
		"login.locked":          "ログインの失敗が続いています。しばらくしてから再度お試しください。",
		"login.logout":          "ログアウトしました。",
		"login.invalidsession":  "セッションが無効です。再度ログインしてください。",
		KeyBookNotFound:         "書籍が見つかりません。",
		KeyOptimisticConflict:   "他のユーザによって更新されています。再読み込みしてからやり直してください。",
		KeyValidation:           "入力内容にエラーがあります。",
		KeySystemError:          "システムエラーが発生しました。管理者に連絡してください。",
		KeyForbidden:            "このページにアクセスする権限がありません。",
		"validation.required":   "%sを入力してください",
		"validation.not-blank":  "%sに空白のみは入力できません",
		"validation.max-size":   "%sは%d文字以内で入力してください",
		"validation.malformed":  "送信された内容を読み取れません",
		"export.sheet":          "書籍",
		"export.header.id":      "ID",
		"export.header.created": "作成日時",
	},
}
