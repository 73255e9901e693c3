package handlers

const (
	msgRouteNotFound    = "مسیر درخواستی یافت نشد"
	msgMethodNotAllowed = "این متد برای مسیر درخواستی مجاز نیست"

	msgCategoryDeleted  = "دسته‌بندی با موفقیت حذف شد"
	msgProductDeleted   = "محصول با موفقیت حذف شد"
	msgAttributeDeleted = "ویژگی با موفقیت حذف شد"
	msgArticleDeleted   = "مقاله با موفقیت حذف شد"
	msgSliderDeleted    = "اسلایدر با موفقیت حذف شد"
	msgOrderDeleted     = "سفارش با موفقیت حذف شد"
	msgLoggedOut        = "با موفقیت از حساب کاربری خارج شدید"
	msgCategoryRequired = "شناسه دسته‌بندی الزامی است"
)
